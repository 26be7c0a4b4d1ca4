package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynhne/catalog-service/internal/core/domain"
	logicv1 "github.com/duynhne/catalog-service/internal/logic/v1"
)

// ProductHandler serves /productos.
type ProductHandler struct {
	products *logicv1.ProductService
}

// NewProductHandler creates a new ProductHandler with the given ProductService.
func NewProductHandler(products *logicv1.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers the product routes on the given router group.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/productos", h.List)
	rg.POST("/productos", h.Create)
	rg.GET("/productos/:id", h.Get)
	rg.PUT("/productos/:id", h.Update)
	rg.DELETE("/productos/:id", h.Delete)
}

const msgProductNotFound = "Producto no encontrado"

// List handles GET /productos.
func (h *ProductHandler) List(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	products, err := h.products.List(ctx)
	if err != nil {
		failure{internal: "Error al obtener los productos"}.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get handles GET /productos/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{notFound: msgProductNotFound, internal: "Error al obtener el producto"}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	product, err := h.products.Get(ctx, id)
	if err != nil {
		f.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create handles POST /productos.
func (h *ProductHandler) Create(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	var req domain.ProductRequest
	if !bindJSON(ctx, c, span, &req) {
		return
	}

	product, err := h.products.Create(ctx, req)
	if err != nil {
		failure{internal: "Error al crear el producto"}.write(ctx, c, span, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Producto creado exitosamente",
		"producto": product,
	})
}

// Update handles PUT /productos/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{notFound: msgProductNotFound, internal: "Error al actualizar el producto"}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	var req domain.ProductRequest
	if !bindJSON(ctx, c, span, &req) {
		return
	}

	product, err := h.products.Update(ctx, id, req)
	if err != nil {
		f.write(ctx, c, span, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Producto actualizado exitosamente",
		"producto": product,
	})
}

// Delete handles DELETE /productos/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	ctx, span := startSpan(c)
	defer span.End()

	f := failure{notFound: msgProductNotFound, internal: "Error al eliminar el producto"}
	id, ok := pathID(c, f)
	if !ok {
		return
	}

	if err := h.products.Delete(ctx, id); err != nil {
		f.write(ctx, c, span, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado exitosamente"})
}
