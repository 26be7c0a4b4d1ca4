// Package mocks holds testify mocks of the domain repositories, shared by the
// logic and web tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByNumero(ctx context.Context, numero string) (*domain.UserRow, error) {
	args := m.Called(ctx, numero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRow), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.UserRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRow), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.UserRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRow), args.Error(1)
}

func (m *MockUserRepository) ExistsByNumero(ctx context.Context, numero string, excludeID int64) (bool, error) {
	args := m.Called(ctx, numero, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, numero, nombre, apellido, passwordHash string) (int64, error) {
	args := m.Called(ctx, numero, nombre, apellido, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, patch domain.UserPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, nombre string) (int64, error) {
	args := m.Called(ctx, nombre)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, id int64, nombre string) (int64, error) {
	args := m.Called(ctx, id, nombre)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of domain.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p domain.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p domain.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockRevocationRepository is a mock implementation of domain.RevocationRepository.
type MockRevocationRepository struct {
	mock.Mock
}

func (m *MockRevocationRepository) Revoke(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, userID, expiresAt)
	return args.Error(0)
}

func (m *MockRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevocationRepository) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Store is a domain.Store over the mocks above. WithinTx runs fn against the
// same mocks and counts the calls; TxErr, when set, is returned instead of
// calling fn, as a failed BEGIN would be.
type Store struct {
	UserRepo       *MockUserRepository
	CategoryRepo   *MockCategoryRepository
	ProductRepo    *MockProductRepository
	RevocationRepo *MockRevocationRepository

	TxErr   error
	TxCalls int
}

// NewStore returns a Store with fresh mocks.
func NewStore() *Store {
	return &Store{
		UserRepo:       &MockUserRepository{},
		CategoryRepo:   &MockCategoryRepository{},
		ProductRepo:    &MockProductRepository{},
		RevocationRepo: &MockRevocationRepository{},
	}
}

func (s *Store) Users() domain.UserRepository             { return s.UserRepo }
func (s *Store) Categories() domain.CategoryRepository    { return s.CategoryRepo }
func (s *Store) Products() domain.ProductRepository       { return s.ProductRepo }
func (s *Store) Revocations() domain.RevocationRepository { return s.RevocationRepo }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx domain.Store) error) error {
	s.TxCalls++
	if s.TxErr != nil {
		return s.TxErr
	}
	return fn(ctx, s)
}

// AssertExpectations checks every repository mock.
func (s *Store) AssertExpectations(t mock.TestingT) {
	s.UserRepo.AssertExpectations(t)
	s.CategoryRepo.AssertExpectations(t)
	s.ProductRepo.AssertExpectations(t)
	s.RevocationRepo.AssertExpectations(t)
}
