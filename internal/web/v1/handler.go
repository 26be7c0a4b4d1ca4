package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/duynhne/catalog-service/internal/core/domain"
	"github.com/duynhne/catalog-service/internal/logger"
	logicv1 "github.com/duynhne/catalog-service/internal/logic/v1"
	"github.com/duynhne/catalog-service/middleware"
)

// Handler groups the HTTP handlers of the auth API.
// Dependencies are injected via the constructor; no global state.
type Handler struct {
	auth *logicv1.AuthService
}

// NewHandler creates a new Handler with the given AuthService.
func NewHandler(auth *logicv1.AuthService) *Handler {
	return &Handler{auth: auth}
}

// RegisterRoutes registers the auth routes. requireAuth guards the routes
// that act on the caller's token.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/register", h.Register)
	rg.GET("/auth/me", requireAuth, h.GetMe)
	rg.POST("/auth/logout", requireAuth, h.Logout)
}

var (
	loginFailure = failure{
		notFound: "Usuario no encontrado",
		internal: "Error al procesar el inicio de sesión",
	}
	registerFailure = failure{
		conflict: "El número ya está registrado",
		internal: "Error al registrar el usuario",
	}
	meFailure = failure{
		notFound: "Usuario no encontrado",
		internal: "Error al obtener el usuario",
	}
	logoutFailure = failure{
		internal: "Error al cerrar la sesión",
	}
)

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req domain.LoginRequest
	if !bindJSON(ctx, c, span, &req) {
		return
	}

	response, err := h.auth.Login(ctx, req)
	if err != nil {
		loginFailure.write(ctx, c, span, err)
		return
	}

	logger.FromContext(ctx).Info().Int64("user_id", response.User.ID).Msg("Login successful")
	c.JSON(http.StatusOK, response)
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req domain.RegisterRequest
	if !bindJSON(ctx, c, span, &req) {
		return
	}

	response, err := h.auth.Register(ctx, req)
	if err != nil {
		registerFailure.write(ctx, c, span, err)
		return
	}

	logger.FromContext(ctx).Info().Int64("user_id", response.User.ID).Msg("Registration successful")
	c.JSON(http.StatusCreated, response)
}

// GetMe handles GET /auth/me.
func (h *Handler) GetMe(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		span.SetAttributes(attribute.Bool("auth.present", false))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	user, err := h.auth.Me(ctx, claims.Identity)
	if err != nil {
		meFailure.write(ctx, c, span, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout handles POST /auth/logout: the presented token stops being accepted.
func (h *Handler) Logout(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	if err := h.auth.Logout(ctx, claims); err != nil {
		logoutFailure.write(ctx, c, span, err)
		return
	}

	logger.FromContext(ctx).Info().Str("user_id", claims.Identity).Msg("Logout successful")
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada exitosamente"})
}
