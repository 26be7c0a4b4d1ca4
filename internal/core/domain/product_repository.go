package domain

import "context"

// ProductRepository defines the data-access contract for productos.
// NombreCategoria is stored as given; resolving it is the Logic layer's job.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)

	// GetByID returns (nil, nil) when no product is found.
	GetByID(ctx context.Context, id int64) (*Product, error)

	// Create inserts p (ignoring p.ID) and returns the generated id.
	Create(ctx context.Context, p Product) (int64, error)

	// Update overwrites every column of the product p.ID and returns the
	// affected row count.
	Update(ctx context.Context, p Product) (int64, error)

	Delete(ctx context.Context, id int64) (int64, error)
}
