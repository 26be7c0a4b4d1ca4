package domain

import (
	"context"
	"time"
)

// RevocationRepository defines the token denylist contract.
// Entries only need to live until the token would have expired anyway.
type RevocationRepository interface {
	// Revoke denylists the token id until expiresAt.
	Revoke(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error

	// IsRevoked reports whether tokenID is denylisted and not yet expired.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// PurgeExpired drops entries whose tokens have expired and returns how
	// many were removed. Backends with native expiry return 0.
	PurgeExpired(ctx context.Context) (int64, error)
}
