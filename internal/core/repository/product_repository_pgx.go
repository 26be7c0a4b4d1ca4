package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

const productColumns = `id, nombre, precio, descripcion, categoria_id, nombre_categoria`

// PgxProductRepository implements domain.ProductRepository on the productos table.
type PgxProductRepository struct {
	db DBTX
}

// NewProductRepository creates a new PgxProductRepository.
func NewProductRepository(db DBTX) *PgxProductRepository {
	return &PgxProductRepository{db: db}
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Nombre, &p.Precio, &p.Descripcion, &p.CategoriaID, &p.NombreCategoria)
	return p, err
}

func (r *PgxProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM productos ORDER BY id`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		return scanProduct(row)
	})
}

// GetByID returns (nil, nil) when no product is found.
func (r *PgxProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgxProductRepository) Create(ctx context.Context, p domain.Product) (int64, error) {
	query := `INSERT INTO productos (nombre, precio, descripcion, categoria_id, nombre_categoria)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		p.Nombre, p.Precio, p.Descripcion, p.CategoriaID, p.NombreCategoria,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgxProductRepository) Update(ctx context.Context, p domain.Product) (int64, error) {
	query := `UPDATE productos
		SET nombre = $1, precio = $2, descripcion = $3, categoria_id = $4, nombre_categoria = $5
		WHERE id = $6`

	tag, err := r.db.Exec(ctx, query,
		p.Nombre, p.Precio, p.Descripcion, p.CategoriaID, p.NombreCategoria, p.ID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgxProductRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
