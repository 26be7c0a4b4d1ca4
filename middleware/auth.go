package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/duynhne/catalog-service/internal/auth"
	"github.com/duynhne/catalog-service/internal/logger"
)

const claimsKey = "auth_claims"

// Authenticator resolves a bearer token into verified claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token. A missing header
// is 401, a header not of the form "Bearer <token>" is 422, and an expired,
// invalid or revoked token is 401.
func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := StartSpan(c.Request.Context(), "auth.require")
		defer span.End()

		header := c.GetHeader("Authorization")
		if header == "" {
			span.SetAttributes(attribute.Bool("auth.present", false))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Falta el encabezado de autorización"})
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			span.SetAttributes(attribute.Bool("auth.valid_format", false))
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "Formato de autorización inválido, se espera 'Bearer <token>'"})
			return
		}

		claims, err := a.Authenticate(ctx, token)
		if err != nil {
			span.RecordError(err)
			logger.FromContext(ctx).Warn().Err(err).Msg("Token rejected")

			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "El token ha expirado"})
			case errors.Is(err, auth.ErrTokenInvalid):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
			}
			return
		}

		span.SetAttributes(attribute.String("user.id", claims.Identity))
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
