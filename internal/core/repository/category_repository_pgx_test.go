package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

func TestCategoryRepository_List(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, nombre FROM categoria ORDER BY id`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "nombre"}).
			AddRow(int64(1), "Bebidas").
			AddRow(int64(2), "Snacks"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{{ID: 1, Nombre: "Bebidas"}, {ID: 2, Nombre: "Snacks"}}, got)
}

func TestCategoryRepository_List_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(`FROM categoria ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "nombre"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCategoryRepository_GetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, nombre FROM categoria WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "nombre"}).AddRow(int64(1), "Bebidas"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, nombre FROM categoria WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bebidas", got.Nombre)

	got, err = repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categoria (nombre) VALUES ($1) RETURNING id`)).
		WithArgs("Bebidas").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))

	id, err := repo.Create(context.Background(), "Bebidas")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestCategoryRepository_Update(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE categoria SET nombre = $1 WHERE id = $2`)).
		WithArgs("Lácteos", int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	n, err := repo.Update(context.Background(), 5, "Lácteos")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCategoryRepository_Delete_Error(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCategoryRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categoria WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Delete(context.Background(), 5)
	require.Error(t, err)
}
