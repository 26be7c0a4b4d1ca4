package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// PgxUserRepository implements domain.UserRepository on the usuarios table.
type PgxUserRepository struct {
	db DBTX
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(db DBTX) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// GetByNumero returns the user holding numero.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByNumero(ctx context.Context, numero string) (*domain.UserRow, error) {
	query := `SELECT id, numero, nombre, apellido, contrasena FROM usuarios WHERE numero = $1`
	return r.getOne(ctx, query, numero)
}

// GetByID returns the user with the given id.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByID(ctx context.Context, id int64) (*domain.UserRow, error) {
	query := `SELECT id, numero, nombre, apellido, contrasena FROM usuarios WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PgxUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.UserRow, error) {
	var row domain.UserRow
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&row.ID, &row.Numero, &row.Nombre, &row.Apellido, &row.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// List returns every user ordered by id.
func (r *PgxUserRepository) List(ctx context.Context) ([]domain.UserRow, error) {
	query := `SELECT id, numero, nombre, apellido, contrasena FROM usuarios ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserRow, error) {
		var u domain.UserRow
		err := row.Scan(&u.ID, &u.Numero, &u.Nombre, &u.Apellido, &u.PasswordHash)
		return u, err
	})
}

// ExistsByNumero reports whether a user other than excludeID holds numero.
func (r *PgxUserRepository) ExistsByNumero(ctx context.Context, numero string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM usuarios WHERE numero = $1 AND id <> $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, numero, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Create inserts a new user and returns the generated user ID.
func (r *PgxUserRepository) Create(ctx context.Context, numero, nombre, apellido, passwordHash string) (int64, error) {
	query := `INSERT INTO usuarios (numero, nombre, apellido, contrasena) VALUES ($1, $2, $3, $4) RETURNING id`

	var userID int64
	err := r.db.QueryRow(ctx, query, numero, nombre, apellido, passwordHash).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateNumero
		}
		return 0, err
	}

	return userID, nil
}

// Update applies the patch as one statement. Rows whose stored values already
// equal the patch are not counted, so a no-op update reports zero.
func (r *PgxUserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (int64, error) {
	fields := patch.Fields()
	if len(fields) == 0 {
		return 0, nil
	}

	sets := make([]string, 0, len(fields))
	diffs := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, f := range fields {
		sets = append(sets, fmt.Sprintf("%s = $%d", f.Column, i+1))
		diffs = append(diffs, fmt.Sprintf("%s IS DISTINCT FROM $%d", f.Column, i+1))
		args = append(args, f.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE usuarios SET %s WHERE id = $%d AND (%s)`,
		strings.Join(sets, ", "), len(args), strings.Join(diffs, " OR "))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateNumero
		}
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Delete removes the user and returns the affected row count.
func (r *PgxUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
