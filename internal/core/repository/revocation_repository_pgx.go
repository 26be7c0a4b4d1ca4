package repository

import (
	"context"
	"time"
)

// PgxRevocationRepository implements domain.RevocationRepository on the
// tokens_revocados table.
type PgxRevocationRepository struct {
	db DBTX
}

// NewRevocationRepository creates a new PgxRevocationRepository.
func NewRevocationRepository(db DBTX) *PgxRevocationRepository {
	return &PgxRevocationRepository{db: db}
}

// Revoke inserts the token id; revoking the same token twice is a no-op.
func (r *PgxRevocationRepository) Revoke(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error {
	query := `INSERT INTO tokens_revocados (jti, usuario_id, expira_en) VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING`
	_, err := r.db.Exec(ctx, query, tokenID, userID, expiresAt)
	return err
}

// IsRevoked looks the token id up, ignoring entries past their expiry.
func (r *PgxRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tokens_revocados WHERE jti = $1 AND expira_en > now())`

	var revoked bool
	if err := r.db.QueryRow(ctx, query, tokenID).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

// PurgeExpired deletes denylist entries whose tokens have expired.
func (r *PgxRevocationRepository) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tokens_revocados WHERE expira_en <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
