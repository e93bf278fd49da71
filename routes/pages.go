package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imamnura/mini-ecommerce-api/middleware"
)

// SetupPageRoutes registers the storefront page paths behind the redirect
// guard. The pages themselves are rendered by the frontend; these handlers
// exist so the guard has something to protect and health checks have
// something to hit.
func SetupPageRoutes(r *gin.Engine) {
	pages := r.Group("/")
	pages.Use(middleware.ProtectPages())
	{
		pages.GET("/products", pageStub("products"))
		pages.GET("/products/:id", pageStub("product-detail"))
		pages.GET("/cart", pageStub("cart"))
		pages.GET("/login", pageStub("login"))
	}
}

func pageStub(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": name})
	}
}
