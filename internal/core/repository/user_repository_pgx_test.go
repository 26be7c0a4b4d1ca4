package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func strPtr(s string) *string { return &s }

var userColumns = []string{"id", "numero", "nombre", "apellido", "contrasena"}

func TestUserRepository_GetByNumero_Found(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, numero, nombre, apellido, contrasena FROM usuarios WHERE numero = $1`)).
		WithArgs("555").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(int64(1), "555", "A", "B", "$2a$hash"))

	got, err := repo.GetByNumero(context.Background(), "555")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.UserRow{ID: 1, Numero: "555", Nombre: "A", Apellido: "B", PasswordHash: "$2a$hash"}, *got)
}

func TestUserRepository_GetByNumero_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM usuarios WHERE numero = \$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByNumero(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_GetByID_DBError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM usuarios WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByID(context.Background(), 3)
	require.EqualError(t, err, "db down")
}

func TestUserRepository_List(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM usuarios ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(1), "1", "A", "B", "h1").
			AddRow(int64(2), "2", "C", "D", "h2"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[1].Nombre)
}

func TestUserRepository_ExistsByNumero(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM usuarios WHERE numero = $1 AND id <> $2)`)).
		WithArgs("555", int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByNumero(context.Background(), "555", 9)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO usuarios (numero, nombre, apellido, contrasena) VALUES ($1, $2, $3, $4) RETURNING id`)).
		WithArgs("555", "A", "B", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := repo.Create(context.Background(), "555", "A", "B", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO usuarios`).
		WithArgs("555", "A", "B", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_numero_key"})

	_, err := repo.Create(context.Background(), "555", "A", "B", "hash")
	require.ErrorIs(t, err, domain.ErrDuplicateNumero)
}

func TestUserRepository_Update_BuildsStatementFromMask(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE usuarios SET nombre = $1, contrasena = $2 WHERE id = $3 AND (nombre IS DISTINCT FROM $1 OR contrasena IS DISTINCT FROM $2)`,
	)).
		WithArgs("X", "newhash", int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	n, err := repo.Update(context.Background(), 7, domain.UserPatch{
		Nombre:       strPtr("X"),
		PasswordHash: strPtr("newhash"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_Update_NothingChanged(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE usuarios SET numero = $1 WHERE id = $2 AND (numero IS DISTINCT FROM $1)`)).
		WithArgs("555", int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	n, err := repo.Update(context.Background(), 7, domain.UserPatch{Numero: strPtr("555")})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserRepository_Update_EmptyPatchSkipsStore(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	n, err := repo.Update(context.Background(), 7, domain.UserPatch{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserRepository_Update_UniqueViolation(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE usuarios SET numero`).
		WithArgs("555", int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Update(context.Background(), 7, domain.UserPatch{Numero: strPtr("555")})
	require.ErrorIs(t, err, domain.ErrDuplicateNumero)
}

func TestUserRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM usuarios WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM usuarios WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	n, err := repo.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, n)
}
