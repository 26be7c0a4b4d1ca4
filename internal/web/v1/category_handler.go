package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynhne/catalog-service/internal/core/domain"
	logicv1 "github.com/duynhne/catalog-service/internal/logic/v1"
)

// CategoryHandler serves /categorias.
type CategoryHandler struct {
	categories *logicv1.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler with the given CategoryService.
func NewCategoryHandler(categories *logicv1.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// RegisterRoutes registers the category routes on the given router group.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categorias", h.List)
	rg.POST("/categorias", h.Create)
	rg.GET("/categorias/:id", h.Get)
	rg.PUT("/categorias/:id", h.Update)
	rg.DELETE("/categorias/:id", h.Delete)
}

const msgCategoryNotFound = "Categoría no encontrada"

// List handles GET /categorias.
func (h *CategoryHandler) List(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	categories, err := h.categories.List(ctx)
	if err != nil {
		failure{internal: "Error al obtener categorías"}.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get handles GET /categorias/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{notFound: msgCategoryNotFound, internal: "Error al obtener la categoría"}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	category, err := h.categories.Get(ctx, id)
	if err != nil {
		f.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create handles POST /categorias.
func (h *CategoryHandler) Create(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req domain.CategoryRequest
	if !bindJSON(ctx, c, span, &req) {
		return
	}

	category, err := h.categories.Create(ctx, req)
	if err != nil {
		failure{internal: "Error al crear la categoría"}.write(ctx, c, span, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Categoría creada exitosamente",
		"categoria": category,
	})
}

// Update handles PUT /categorias/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{notFound: msgCategoryNotFound, internal: "Error al actualizar la categoría"}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	var req domain.CategoryRequest
	if !bindJSON(ctx, c, span, &req) {
		return
	}

	category, err := h.categories.Update(ctx, id, req)
	if err != nil {
		f.write(ctx, c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Categoría actualizada exitosamente",
		"categoria": category,
	})
}

// Delete handles DELETE /categorias/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{notFound: msgCategoryNotFound, internal: "Error al eliminar la categoría"}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	if err := h.categories.Delete(ctx, id); err != nil {
		f.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Categoría eliminada exitosamente"})
}
