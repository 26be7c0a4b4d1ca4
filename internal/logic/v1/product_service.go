package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/core/domain"
	"github.com/duynhne/catalog-service/middleware"
)

// ProductService implements the product rules, including the binding of a
// product to its category.
type ProductService struct {
	store domain.Store
}

// NewProductService creates a new ProductService.
func NewProductService(store domain.Store) *ProductService {
	return &ProductService{store: store}
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	ctx, span := middleware.StartSpan(ctx, "product.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, storeFailure(ctx, span, "list products", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Get returns the product with the given id.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := middleware.StartSpan(ctx, "product.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("product.id", id),
	))
	defer span.End()

	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(ctx, span, "query product", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return product, nil
}

// Create validates req, resolves its category and inserts the product in one
// transaction.
func (s *ProductService) Create(ctx context.Context, req domain.ProductRequest) (*domain.Product, error) {
	ctx, span := middleware.StartSpan(ctx, "product.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	in, err := parseProductInput(req)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		p, err := resolveProduct(ctx, span, tx, in)
		if err != nil {
			return err
		}

		p.ID, err = tx.Products().Create(ctx, p)
		if err != nil {
			return storeFailure(ctx, span, "insert product", err)
		}

		product = p
		return nil
	})
	if err != nil {
		return nil, txFailure(ctx, span, "create product", err)
	}

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	return &product, nil
}

// Update overwrites the product with the validated req in one transaction.
func (s *ProductService) Update(ctx context.Context, id int64, req domain.ProductRequest) (*domain.Product, error) {
	ctx, span := middleware.StartSpan(ctx, "product.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("product.id", id),
	))
	defer span.End()

	in, err := parseProductInput(req)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		p, err := resolveProduct(ctx, span, tx, in)
		if err != nil {
			return err
		}
		p.ID = id

		n, err := tx.Products().Update(ctx, p)
		if err != nil {
			return storeFailure(ctx, span, "update product", err)
		}
		if n == 0 {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}

		product = p
		return nil
	})
	if err != nil {
		return nil, txFailure(ctx, span, "update product", err)
	}

	return &product, nil
}

// Delete removes the product.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	ctx, span := middleware.StartSpan(ctx, "product.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("product.id", id),
	))
	defer span.End()

	n, err := s.store.Products().Delete(ctx, id)
	if err != nil {
		return storeFailure(ctx, span, "delete product", err)
	}
	if n == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// resolveProduct builds the row to write. A linked product takes its
// nombre_categoria from the store, ignoring any name the client sent.
func resolveProduct(ctx context.Context, span trace.Span, tx domain.Store, in productInput) (domain.Product, error) {
	p := domain.Product{
		Nombre:          in.Nombre,
		Precio:          in.Precio,
		Descripcion:     in.Descripcion,
		NombreCategoria: in.Category.Nombre,
	}

	if in.Category.ID == nil {
		return p, nil
	}

	category, err := tx.Categories().GetByID(ctx, *in.Category.ID)
	if err != nil {
		return domain.Product{}, storeFailure(ctx, span, "query category", err)
	}
	if category == nil {
		return domain.Product{}, invalid(msgCategoryNotFound)
	}

	p.CategoriaID = &category.ID
	p.NombreCategoria = category.Nombre
	return p, nil
}
