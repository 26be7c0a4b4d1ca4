package domain

import "context"

// Store groups the repositories of one connection scope.
//
// Repositories obtained from a Store passed to WithinTx run inside that
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise; the connection is released on every path.
type Store interface {
	Users() UserRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Revocations() RevocationRepository

	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
