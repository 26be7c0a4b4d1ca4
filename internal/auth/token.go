// Package auth provides the credential primitives used by the logic layer:
// bcrypt password hashing and HS256 identity tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for bad signatures, unexpected algorithms
	// and missing or malformed claims.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is what a verified token says about its bearer.
type Claims struct {
	Identity  string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and verifies signed, expiring identity tokens.
// Verification needs no server state; revocation is layered on top by the caller.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager signing with secret.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests to step past expiry.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue mints a token for identity valid for the configured TTL.
func (m *TokenManager) Issue(identity string) (string, error) {
	if identity == "" {
		return "", fmt.Errorf("issue token: empty identity")
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   identity,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature, algorithm and expiry and returns the token's claims.
// Leeway is zero: a token is expired the second its exp passes.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	rc := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, rc, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if rc.Subject == "" || rc.IssuedAt == nil || rc.ID == "" {
		return nil, fmt.Errorf("%w: missing required claims", ErrTokenInvalid)
	}

	return &Claims{
		Identity:  rc.Subject,
		ID:        rc.ID,
		IssuedAt:  rc.IssuedAt.Time,
		ExpiresAt: rc.ExpiresAt.Time,
	}, nil
}
