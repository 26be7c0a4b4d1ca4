package domain

import "context"

// CategoryRepository defines the data-access contract for categoria.
type CategoryRepository interface {
	// List returns every category ordered by id.
	List(ctx context.Context) ([]Category, error)

	// GetByID returns the category with the given id.
	// Returns (nil, nil) when no category is found.
	GetByID(ctx context.Context, id int64) (*Category, error)

	// Create inserts a category and returns the generated id.
	Create(ctx context.Context, nombre string) (int64, error)

	// Update renames the category and returns the affected row count.
	// Products keep the name they were written with.
	Update(ctx context.Context, id int64, nombre string) (int64, error)

	// Delete removes the category and returns the affected row count.
	// Products referencing it are left untouched.
	Delete(ctx context.Context, id int64) (int64, error)
}
