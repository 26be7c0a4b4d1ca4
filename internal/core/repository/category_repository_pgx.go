package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// PgxCategoryRepository implements domain.CategoryRepository on the categoria table.
type PgxCategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new PgxCategoryRepository.
func NewCategoryRepository(db DBTX) *PgxCategoryRepository {
	return &PgxCategoryRepository{db: db}
}

func (r *PgxCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, nombre FROM categoria ORDER BY id`)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.ID, &c.Nombre)
		return c, err
	})
}

// GetByID returns (nil, nil) when no category is found.
func (r *PgxCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRow(ctx, `SELECT id, nombre FROM categoria WHERE id = $1`, id).Scan(&c.ID, &c.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PgxCategoryRepository) Create(ctx context.Context, nombre string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO categoria (nombre) VALUES ($1) RETURNING id`, nombre).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgxCategoryRepository) Update(ctx context.Context, id int64, nombre string) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE categoria SET nombre = $1 WHERE id = $2`, nombre, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgxCategoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM categoria WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
