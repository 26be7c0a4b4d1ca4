package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/core/domain"
	"github.com/duynhne/catalog-service/middleware"
)

// CategoryService implements the category rules.
type CategoryService struct {
	store domain.Store
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store domain.Store) *CategoryService {
	return &CategoryService{store: store}
}

// List returns every category.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	ctx, span := middleware.StartSpan(ctx, "category.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	categories, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, storeFailure(ctx, span, "list categories", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// Get returns the category with the given id.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	ctx, span := middleware.StartSpan(ctx, "category.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("category.id", id),
	))
	defer span.End()

	category, err := s.store.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(ctx, span, "query category", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return category, nil
}

// Create inserts a new category.
func (s *CategoryService) Create(ctx context.Context, req domain.CategoryRequest) (*domain.Category, error) {
	ctx, span := middleware.StartSpan(ctx, "category.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := checkRequest(req, msgNameRequired); err != nil {
		return nil, err
	}

	id, err := s.store.Categories().Create(ctx, req.Nombre)
	if err != nil {
		return nil, storeFailure(ctx, span, "insert category", err)
	}

	span.SetAttributes(attribute.Int64("category.id", id))
	return &domain.Category{ID: id, Nombre: req.Nombre}, nil
}

// Update renames the category. Products keep the name they were written with.
func (s *CategoryService) Update(ctx context.Context, id int64, req domain.CategoryRequest) (*domain.Category, error) {
	ctx, span := middleware.StartSpan(ctx, "category.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("category.id", id),
	))
	defer span.End()

	if err := checkRequest(req, msgNameRequired); err != nil {
		return nil, err
	}

	n, err := s.store.Categories().Update(ctx, id, req.Nombre)
	if err != nil {
		return nil, storeFailure(ctx, span, "update category", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}

	return &domain.Category{ID: id, Nombre: req.Nombre}, nil
}

// Delete removes the category; products that reference it are left as they are.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	ctx, span := middleware.StartSpan(ctx, "category.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("category.id", id),
	))
	defer span.End()

	n, err := s.store.Categories().Delete(ctx, id)
	if err != nil {
		return storeFailure(ctx, span, "delete category", err)
	}
	if n == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return nil
}
