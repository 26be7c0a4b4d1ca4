package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/auth"
	"github.com/duynhne/catalog-service/internal/core/domain"
	"github.com/duynhne/catalog-service/internal/logger"
	"github.com/duynhne/catalog-service/middleware"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	Issue(identity string) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// AuthService implements authentication business rules.
// It depends on repository interfaces (injected via constructor) and
// MUST NOT access the database or SQL directly.
type AuthService struct {
	store  domain.Store
	hasher PasswordHasher
	tokens TokenManager
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(store domain.Store, hasher PasswordHasher, tokens TokenManager) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login handles user login business logic.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("numero", req.Numero),
	))
	defer span.End()

	if err := checkRequest(req, msgLoginRequired); err != nil {
		return nil, err
	}

	row, err := s.store.Users().GetByNumero(ctx, req.Numero)
	if err != nil {
		return nil, storeFailure(ctx, span, "query user", err)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate user %q: %w", req.Numero, ErrNotFound)
	}

	if !s.hasher.Verify(req.Contrasena, row.PasswordHash) {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return nil, fmt.Errorf("authenticate user %q: %w", req.Numero, ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(strconv.FormatInt(row.ID, 10))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("user.id", row.ID),
		attribute.Bool("auth.success", true),
	)
	span.AddEvent("user.authenticated")

	return &domain.AuthResponse{
		Message: "Inicio de sesión exitoso",
		Token:   token,
		User:    row.Summary(),
	}, nil
}

// Register handles user registration business logic.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("numero", req.Numero),
	))
	defer span.End()

	if err := validateNewUser(req, msgRegisterRequired); err != nil {
		return nil, err
	}

	user, err := createUser(ctx, span, s.store.Users(), s.hasher, req)
	if err != nil {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return nil, err
	}

	token, err := s.tokens.Issue(strconv.FormatInt(user.ID, 10))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.Bool("registration.success", true),
	)
	span.AddEvent("user.registered")

	return &domain.AuthResponse{
		Message: "Usuario registrado exitosamente",
		Token:   token,
		User:    *user,
	}, nil
}

// createUser checks the number, hashes the password and inserts the user.
// A duplicate that slips past the pre-check is caught by the unique constraint.
func createUser(ctx context.Context, span trace.Span, users domain.UserRepository, hasher PasswordHasher, req domain.RegisterRequest) (*domain.User, error) {
	exists, err := users.ExistsByNumero(ctx, req.Numero, 0)
	if err != nil {
		return nil, storeFailure(ctx, span, "check existing user", err)
	}
	if exists {
		return nil, fmt.Errorf("register user %q: %w", req.Numero, ErrConflict)
	}

	hash, err := hasher.Hash(req.Contrasena)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := users.Create(ctx, req.Numero, req.Nombre, req.Apellido, hash)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateNumero) {
			return nil, fmt.Errorf("register user %q: %w", req.Numero, ErrConflict)
		}
		return nil, storeFailure(ctx, span, "insert user", err)
	}

	return &domain.User{
		ID:       id,
		Numero:   req.Numero,
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
	}, nil
}

// Authenticate verifies a bearer token and checks it against the denylist.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.authenticate", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	claims, err := s.tokens.Verify(token)
	if err != nil {
		span.SetAttributes(attribute.Bool("token.valid", false))
		return nil, fmt.Errorf("verify token: %w", err)
	}

	revoked, err := s.store.Revocations().IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, storeFailure(ctx, span, "check token revocation", err)
	}
	if revoked {
		span.SetAttributes(attribute.Bool("token.valid", false))
		return nil, fmt.Errorf("token %s revoked: %w", claims.ID, ErrTokenInvalid)
	}

	span.SetAttributes(
		attribute.String("user.id", claims.Identity),
		attribute.Bool("token.valid", true),
	)
	return claims, nil
}

// Me returns the user the token was issued to.
func (s *AuthService) Me(ctx context.Context, identity string) (*domain.User, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.me", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", identity),
	))
	defer span.End()

	userID, err := strconv.ParseInt(identity, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token identity %q: %w", identity, ErrTokenInvalid)
	}

	row, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, storeFailure(ctx, span, "query user", err)
	}
	if row == nil {
		return nil, fmt.Errorf("lookup user %d: %w", userID, ErrNotFound)
	}

	user := row.Summary()
	return &user, nil
}

// Logout denylists the presented token until it expires. Expired entries are
// purged on the way; a failed purge does not fail the logout.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ctx, span := middleware.StartSpan(ctx, "auth.logout", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("user.id", claims.Identity),
	))
	defer span.End()

	userID, err := strconv.ParseInt(claims.Identity, 10, 64)
	if err != nil {
		return fmt.Errorf("token identity %q: %w", claims.Identity, ErrTokenInvalid)
	}

	revocations := s.store.Revocations()
	if err := revocations.Revoke(ctx, claims.ID, userID, claims.ExpiresAt); err != nil {
		return storeFailure(ctx, span, "revoke token", err)
	}

	if purged, err := revocations.PurgeExpired(ctx); err != nil {
		span.RecordError(fmt.Errorf("purge expired revocations: %w", err))
		logger.FromContext(ctx).Warn().Err(err).Msg("Purging expired revocations failed")
	} else if purged > 0 {
		logger.FromContext(ctx).Debug().Int64("purged", purged).Msg("Expired revocations purged")
	}

	span.AddEvent("token.revoked")
	return nil
}
