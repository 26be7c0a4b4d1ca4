package v1

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/duynhne/catalog-service/internal/auth"
	"github.com/duynhne/catalog-service/internal/core/domain"
	"github.com/duynhne/catalog-service/internal/core/domain/mocks"
)

func newUserService(t *testing.T) (*UserService, *mocks.Store, *auth.PasswordHasher) {
	t.Helper()
	store := mocks.NewStore()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	t.Cleanup(func() { store.AssertExpectations(t) })
	return NewUserService(store, hasher), store, hasher
}

func strPtr(s string) *string { return &s }

var storedUser = &domain.UserRow{ID: 5, Numero: "555", Nombre: "Ana", Apellido: "Diaz", PasswordHash: "old-hash"}

func TestUserService_ListHidesHashes(t *testing.T) {
	svc, store, _ := newUserService(t)
	store.UserRepo.On("List", mock.Anything).Return([]domain.UserRow{*storedUser}, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.User{{ID: 5, Numero: "555", Nombre: "Ana", Apellido: "Diaz"}}, got)
}

func TestUserService_Create(t *testing.T) {
	svc, store, _ := newUserService(t)
	store.UserRepo.On("ExistsByNumero", mock.Anything, "777", int64(0)).Return(false, nil)
	store.UserRepo.On("Create", mock.Anything, "777", "Luis", "Paz", mock.Anything).Return(int64(8), nil)

	got, err := svc.Create(context.Background(), domain.RegisterRequest{Numero: "777", Nombre: "Luis", Apellido: "Paz", Contrasena: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 8, Numero: "777", Nombre: "Luis", Apellido: "Paz"}, *got)

	_, err = svc.Create(context.Background(), domain.RegisterRequest{Numero: "777"})
	assert.Equal(t, "Número, nombre, apellido y contraseña son requeridos", validationMessage(t, err))
}

func TestUserService_Update_OnlySuppliedFields(t *testing.T) {
	svc, store, _ := newUserService(t)
	store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
	store.UserRepo.On("Update", mock.Anything, int64(5), domain.UserPatch{Nombre: strPtr("Anabel")}).Return(int64(1), nil)

	got, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Nombre: strPtr("Anabel"), Contrasena: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 5, Numero: "555", Nombre: "Anabel", Apellido: "Diaz"}, *got)
	assert.Equal(t, 1, store.TxCalls)
	store.UserRepo.AssertNotCalled(t, "ExistsByNumero", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Update_HashesNewPassword(t *testing.T) {
	svc, store, hasher := newUserService(t)
	store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
	store.UserRepo.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(p domain.UserPatch) bool {
		return p.Numero == nil && p.Nombre == nil && p.Apellido == nil &&
			p.PasswordHash != nil && hasher.Verify("nueva123", *p.PasswordHash)
	})).Return(int64(1), nil)

	_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Contrasena: strPtr("nueva123")})
	require.NoError(t, err)
}

// countingHasher records how many times Hash ran.
type countingHasher struct {
	PasswordHasher
	hashes int
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.hashes++
	return h.PasswordHasher.Hash(password)
}

func TestUserService_Update_HashesOnlyAfterChecks(t *testing.T) {
	newSvc := func(t *testing.T) (*UserService, *mocks.Store, *countingHasher) {
		store := mocks.NewStore()
		hasher := &countingHasher{PasswordHasher: auth.NewPasswordHasher(bcrypt.MinCost)}
		t.Cleanup(func() { store.AssertExpectations(t) })
		return NewUserService(store, hasher), store, hasher
	}

	t.Run("missing user", func(t *testing.T) {
		svc, store, hasher := newSvc(t)
		store.UserRepo.On("GetByID", mock.Anything, int64(6)).Return(nil, nil)

		_, err := svc.Update(context.Background(), 6, domain.UserUpdateRequest{Contrasena: strPtr("nueva123")})
		require.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, hasher.hashes)
	})

	t.Run("numero taken", func(t *testing.T) {
		svc, store, hasher := newSvc(t)
		store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
		store.UserRepo.On("ExistsByNumero", mock.Anything, "999", int64(5)).Return(true, nil)

		_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Numero: strPtr("999"), Contrasena: strPtr("nueva123")})
		require.ErrorIs(t, err, ErrConflict)
		assert.Zero(t, hasher.hashes)
	})

	t.Run("applied", func(t *testing.T) {
		svc, store, hasher := newSvc(t)
		store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
		store.UserRepo.On("Update", mock.Anything, int64(5), mock.Anything).Return(int64(1), nil)

		_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Contrasena: strPtr("nueva123")})
		require.NoError(t, err)
		assert.Equal(t, 1, hasher.hashes)
	})
}

func TestUserService_Update_NumeroHeldByAnother(t *testing.T) {
	svc, store, _ := newUserService(t)
	store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
	store.UserRepo.On("ExistsByNumero", mock.Anything, "999", int64(5)).Return(true, nil)

	_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Numero: strPtr("999")})
	require.ErrorIs(t, err, ErrConflict)
	store.UserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Update_OwnNumeroIsNoChange(t *testing.T) {
	svc, store, _ := newUserService(t)
	store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
	store.UserRepo.On("ExistsByNumero", mock.Anything, "555", int64(5)).Return(false, nil)
	store.UserRepo.On("Update", mock.Anything, int64(5), domain.UserPatch{Numero: strPtr("555")}).Return(int64(0), nil)

	_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Numero: strPtr("555")})
	require.ErrorIs(t, err, ErrNoChange)
}

func TestUserService_Update_EmptyRequestIsNoChange(t *testing.T) {
	svc, store, _ := newUserService(t)
	store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
	store.UserRepo.On("Update", mock.Anything, int64(5), domain.UserPatch{}).Return(int64(0), nil)

	_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{})
	require.ErrorIs(t, err, ErrNoChange)
}

func TestUserService_Update_Errors(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		svc, store, _ := newUserService(t)
		store.UserRepo.On("GetByID", mock.Anything, int64(6)).Return(nil, nil)

		_, err := svc.Update(context.Background(), 6, domain.UserUpdateRequest{Nombre: strPtr("X")})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank field", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Apellido: strPtr("")})
		assert.Equal(t, "Número, nombre y apellido no pueden estar vacíos", validationMessage(t, err))
	})

	t.Run("short password", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Contrasena: strPtr("123")})
		assert.Equal(t, "La contraseña debe tener al menos 6 caracteres", validationMessage(t, err))
	})

	t.Run("password over 72 bytes", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Contrasena: strPtr(strings.Repeat("ñ", 37))})
		assert.Equal(t, "La contraseña no puede superar los 72 bytes", validationMessage(t, err))
	})

	t.Run("blank field reported before password", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Nombre: strPtr(""), Contrasena: strPtr("1")})
		assert.Equal(t, "Número, nombre y apellido no pueden estar vacíos", validationMessage(t, err))
	})

	t.Run("constraint race", func(t *testing.T) {
		svc, store, _ := newUserService(t)
		store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
		store.UserRepo.On("ExistsByNumero", mock.Anything, "999", int64(5)).Return(false, nil)
		store.UserRepo.On("Update", mock.Anything, int64(5), mock.Anything).Return(int64(0), domain.ErrDuplicateNumero)

		_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Numero: strPtr("999")})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, store, _ := newUserService(t)
		store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, errDB)

		_, err := svc.Update(context.Background(), 5, domain.UserUpdateRequest{Nombre: strPtr("X")})
		require.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestUserService_GetAndDelete(t *testing.T) {
	svc, store, _ := newUserService(t)
	store.UserRepo.On("GetByID", mock.Anything, int64(5)).Return(storedUser, nil)
	store.UserRepo.On("Delete", mock.Anything, int64(5)).Return(int64(1), nil).Once()
	store.UserRepo.On("Delete", mock.Anything, int64(5)).Return(int64(0), nil).Once()

	got, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nombre)

	require.NoError(t, svc.Delete(context.Background(), 5))
	require.ErrorIs(t, svc.Delete(context.Background(), 5), ErrNotFound)
}
