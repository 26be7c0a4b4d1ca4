// Package v1 provides the business logic for API version 1: authentication
// and the integrity rules of users, categories and products.
//
// Error Handling:
// Failures are reported with the sentinel errors below, wrapped with context
// using fmt.Errorf("%w"). Input problems are *ValidationError values, which
// carry the outward message and unwrap to ErrValidation.
//
// Error Checking (in handlers):
//
//	var verr *logicv1.ValidationError
//	switch {
//	case errors.As(err, &verr):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
//	case errors.Is(err, logicv1.ErrNotFound):
//	    c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
//	}
package v1

import (
	"errors"

	"github.com/duynhne/catalog-service/internal/auth"
)

// Sentinel errors for logic operations.
var (
	// ErrValidation indicates malformed or incomplete input.
	// HTTP Status: 400 Bad Request
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the addressed resource does not exist.
	// HTTP Status: 404 Not Found
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the numero is already held by another user.
	// HTTP Status: 409 Conflict
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials indicates a wrong password.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the bearer token is past its expiry.
	// HTTP Status: 401 Unauthorized
	ErrTokenExpired = auth.ErrTokenExpired

	// ErrTokenInvalid indicates a bad, malformed or revoked bearer token.
	// HTTP Status: 401 Unauthorized
	ErrTokenInvalid = auth.ErrTokenInvalid

	// ErrNoChange indicates an update that would leave the row as it was.
	// HTTP Status: 400 Bad Request
	ErrNoChange = errors.New("no change")

	// ErrStoreUnavailable indicates the database failed; details are logged,
	// never returned to the client.
	// HTTP Status: 500 Internal Server Error
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError is an ErrValidation with the message shown to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
