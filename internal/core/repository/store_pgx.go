package repository

import (
	"context"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// PgxStore implements domain.Store on top of a pgx pool or transaction.
type PgxStore struct {
	conn        TxBeginner
	revocations domain.RevocationRepository
}

// NewStore creates a PgxStore. Token revocations go to PostgreSQL unless
// WithRevocations installs another backend.
func NewStore(conn TxBeginner) *PgxStore {
	return &PgxStore{conn: conn}
}

// WithRevocations replaces the denylist backend.
func (s *PgxStore) WithRevocations(r domain.RevocationRepository) *PgxStore {
	s.revocations = r
	return s
}

func (s *PgxStore) Users() domain.UserRepository {
	return NewUserRepository(s.conn)
}

func (s *PgxStore) Categories() domain.CategoryRepository {
	return NewCategoryRepository(s.conn)
}

func (s *PgxStore) Products() domain.ProductRepository {
	return NewProductRepository(s.conn)
}

func (s *PgxStore) Revocations() domain.RevocationRepository {
	if s.revocations != nil {
		return s.revocations
	}
	return NewRevocationRepository(s.conn)
}

// WithinTx begins a transaction (a savepoint if s is already transactional),
// runs fn with a Store bound to it, then commits on success or rolls back on
// error/panic. Panics are rethrown after the rollback.
func (s *PgxStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Store) error) (err error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(ctx, &PgxStore{conn: tx, revocations: s.revocations})
	return err
}
