package v1

import "github.com/gin-gonic/gin"

// Handlers bundles every v1 handler.
type Handlers struct {
	Auth       *Handler
	Categories *CategoryHandler
	Products   *ProductHandler
	Users      *UserHandler
}

// Mount registers the public auth routes on rg and every resource route
// behind requireAuth.
func (h Handlers) Mount(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	h.Auth.RegisterRoutes(rg, requireAuth)

	protected := rg.Group("", requireAuth)
	h.Categories.RegisterRoutes(protected)
	h.Products.RegisterRoutes(protected)
	h.Users.RegisterRoutes(protected)
}
