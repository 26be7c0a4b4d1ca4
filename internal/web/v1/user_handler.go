package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynhne/catalog-service/internal/core/domain"
	logicv1 "github.com/duynhne/catalog-service/internal/logic/v1"
)

// UserHandler serves /usuarios. Responses carry user summaries only.
type UserHandler struct {
	users *logicv1.UserService
}

// NewUserHandler creates a new UserHandler with the given UserService.
func NewUserHandler(users *logicv1.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers the user routes on the given router group.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usuarios", h.List)
	rg.POST("/usuarios", h.Create)
	rg.GET("/usuarios/:id", h.Get)
	rg.PUT("/usuarios/:id", h.Update)
	rg.DELETE("/usuarios/:id", h.Delete)
}

const msgUserNotFound = "Usuario no encontrado"

// List handles GET /usuarios.
func (h *UserHandler) List(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	users, err := h.users.List(ctx)
	if err != nil {
		failure{internal: "Error al obtener los usuarios"}.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get handles GET /usuarios/:id.
func (h *UserHandler) Get(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{notFound: msgUserNotFound, internal: "Error al obtener el usuario"}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	user, err := h.users.Get(ctx, id)
	if err != nil {
		f.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create handles POST /usuarios.
func (h *UserHandler) Create(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req domain.RegisterRequest
	if !bindJSON(ctx, c, span, &req) {
		return
	}

	user, err := h.users.Create(ctx, req)
	if err != nil {
		failure{
			conflict: "El número ya está registrado",
			internal: "Error al crear el usuario",
		}.write(ctx, c, span, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario creado exitosamente",
		"usuario": user,
	})
}

// Update handles PUT /usuarios/:id.
func (h *UserHandler) Update(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{
		notFound: msgUserNotFound,
		conflict: "El número ya está en uso por otro usuario",
		noChange: "No se realizaron cambios en el usuario",
		internal: "Error al actualizar el usuario",
	}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	var req domain.UserUpdateRequest
	if !bindJSON(ctx, c, span, &req) {
		return
	}

	user, err := h.users.Update(ctx, id, req)
	if err != nil {
		f.write(ctx, c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Usuario actualizado exitosamente",
		"usuario": user,
	})
}

// Delete handles DELETE /usuarios/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{notFound: msgUserNotFound, internal: "Error al eliminar el usuario"}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	if err := h.users.Delete(ctx, id); err != nil {
		f.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado exitosamente"})
}
