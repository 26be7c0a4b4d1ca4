package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

var productRowColumns = []string{"id", "nombre", "precio", "descripcion", "categoria_id", "nombre_categoria"}

func int64Ptr(v int64) *int64 { return &v }

func TestProductRepository_List(t *testing.T) {
	mock := newMockPool(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + productColumns + ` FROM productos ORDER BY id`)).
		WillReturnRows(pgxmock.NewRows(productRowColumns).
			AddRow(int64(1), "Agua", 1.5, "500ml", int64Ptr(2), "Bebidas").
			AddRow(int64(2), "Pan", 0.8, "", (*int64)(nil), "Panadería"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.Product{
		ID: 1, Nombre: "Agua", Precio: 1.5, Descripcion: "500ml",
		CategoriaID: int64Ptr(2), NombreCategoria: "Bebidas",
	}, got[0])
	assert.Nil(t, got[1].CategoriaID)
	assert.Equal(t, "Panadería", got[1].NombreCategoria)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewProductRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM productos WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewProductRepository(mock)

	p := domain.Product{Nombre: "Agua", Precio: 1.5, Descripcion: "500ml", CategoriaID: int64Ptr(2), NombreCategoria: "Bebidas"}

	mock.ExpectQuery(`INSERT INTO productos`).
		WithArgs("Agua", 1.5, "500ml", int64Ptr(2), "Bebidas").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))

	id, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
}

func TestProductRepository_Create_Unlinked(t *testing.T) {
	mock := newMockPool(t)
	repo := NewProductRepository(mock)

	p := domain.Product{Nombre: "Pan", Precio: 0, NombreCategoria: "Libre"}

	mock.ExpectQuery(`INSERT INTO productos`).
		WithArgs("Pan", float64(0), "", (*int64)(nil), "Libre").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestProductRepository_Update(t *testing.T) {
	mock := newMockPool(t)
	repo := NewProductRepository(mock)

	p := domain.Product{ID: 10, Nombre: "Agua", Precio: 2, Descripcion: "1l", CategoriaID: int64Ptr(2), NombreCategoria: "Bebidas"}

	mock.ExpectExec(`UPDATE productos`).
		WithArgs("Agua", float64(2), "1l", int64Ptr(2), "Bebidas", int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	n, err := repo.Update(context.Background(), p)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProductRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM productos WHERE id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	n, err := repo.Delete(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
