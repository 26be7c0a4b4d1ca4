package v1

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/core/domain"
	"github.com/duynhne/catalog-service/middleware"
)

// UserService manages users as a resource. It never exposes password hashes.
type UserService struct {
	store  domain.Store
	hasher PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(store domain.Store, hasher PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// List returns every user as a summary.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "user.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	rows, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, storeFailure(ctx, span, "list users", err)
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.Summary())
	}
	return users, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "user.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", id),
	))
	defer span.End()

	row, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(ctx, span, "query user", err)
	}
	if row == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	user := row.Summary()
	return &user, nil
}

// Create adds a user with the registration rules but issues no token.
func (s *UserService) Create(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "user.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("numero", req.Numero),
	))
	defer span.End()

	if err := validateNewUser(req, msgCreateUserRequired); err != nil {
		return nil, err
	}

	user, err := createUser(ctx, span, s.store.Users(), s.hasher, req)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))
	return user, nil
}

// Update applies the fields present in req. Empty contrasena counts as
// omitted. An update that changes nothing is ErrNoChange.
func (s *UserService) Update(ctx context.Context, id int64, req domain.UserUpdateRequest) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "user.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", id),
	))
	defer span.End()

	if err := checkRequest(req, msgUserFieldsEmpty); err != nil {
		return nil, err
	}

	var password string
	if req.Contrasena != nil && *req.Contrasena != "" {
		password = *req.Contrasena
		if err := validatePassword(password); err != nil {
			return nil, err
		}
	}

	patch := domain.UserPatch{
		Numero:   req.Numero,
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
	}

	var updated domain.User
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx domain.Store) error {
		users := tx.Users()

		row, err := users.GetByID(ctx, id)
		if err != nil {
			return storeFailure(ctx, span, "query user", err)
		}
		if row == nil {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}

		if patch.Numero != nil {
			taken, err := users.ExistsByNumero(ctx, *patch.Numero, id)
			if err != nil {
				return storeFailure(ctx, span, "check existing user", err)
			}
			if taken {
				return fmt.Errorf("user %d numero %q: %w", id, *patch.Numero, ErrConflict)
			}
		}

		// Hashed only once the user and numero checks have passed.
		if password != "" {
			hash, err := s.hasher.Hash(password)
			if err != nil {
				span.RecordError(err)
				return fmt.Errorf("hash password: %w", err)
			}
			patch.PasswordHash = &hash
		}

		n, err := users.Update(ctx, id, patch)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateNumero) {
				return fmt.Errorf("user %d numero: %w", id, ErrConflict)
			}
			return storeFailure(ctx, span, "update user", err)
		}
		if n == 0 {
			return fmt.Errorf("user %d: %w", id, ErrNoChange)
		}

		updated = applyPatch(*row, patch).Summary()
		return nil
	})
	if err != nil {
		return nil, txFailure(ctx, span, "update user", err)
	}

	span.SetAttributes(attribute.Int("update.fields", len(patch.Fields())))
	return &updated, nil
}

// Delete removes the user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	ctx, span := middleware.StartSpan(ctx, "user.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("user.id", id),
	))
	defer span.End()

	n, err := s.store.Users().Delete(ctx, id)
	if err != nil {
		return storeFailure(ctx, span, "delete user", err)
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

func applyPatch(row domain.UserRow, patch domain.UserPatch) domain.UserRow {
	if patch.Numero != nil {
		row.Numero = *patch.Numero
	}
	if patch.Nombre != nil {
		row.Nombre = *patch.Nombre
	}
	if patch.Apellido != nil {
		row.Apellido = *patch.Apellido
	}
	if patch.PasswordHash != nil {
		row.PasswordHash = *patch.PasswordHash
	}
	return row
}
