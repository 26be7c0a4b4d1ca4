package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationRepository_Revoke(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRevocationRepository(mock)

	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO tokens_revocados`).
		WithArgs("jti-1", int64(7), exp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Revoke(context.Background(), "jti-1", 7, exp))
}

func TestRevocationRepository_IsRevoked(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRevocationRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM tokens_revocados WHERE jti = $1 AND expira_en > now())`)).
		WithArgs("jti-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`FROM tokens_revocados`).
		WithArgs("jti-2").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	revoked, err := repo.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationRepository_PurgeExpired(t *testing.T) {
	mock := newMockPool(t)
	repo := NewRevocationRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tokens_revocados WHERE expira_en <= now()`)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
