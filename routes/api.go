package routes

import (
	"github.com/gin-gonic/gin"

	browsecontroller "github.com/imamnura/mini-ecommerce-api/controllers/browse"
	cartControllers "github.com/imamnura/mini-ecommerce-api/controllers/cart"
	productcontroller "github.com/imamnura/mini-ecommerce-api/controllers/product"
	sessionControllers "github.com/imamnura/mini-ecommerce-api/controllers/session"
	uploadcontroller "github.com/imamnura/mini-ecommerce-api/controllers/upload"
	"github.com/imamnura/mini-ecommerce-api/middleware"
)

// SetupPublicRoutes registers the session endpoints and the catalog proxy.
func SetupPublicRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")
	{
		// ──────────────── Session ────────────────
		api.POST("/login", sessionControllers.Login(d.API))   // POST /api/login
		api.GET("/me", sessionControllers.Me())               // GET /api/me
		api.POST("/logout", sessionControllers.Logout())      // POST /api/logout

		// ──────────────── Catalog proxy ────────────────
		api.GET("/products", productcontroller.GetProducts(d.API))                 // GET /api/products?limit=&skip=&q=
		api.GET("/products/categories", productcontroller.GetCategories(d.API))    // GET /api/products/categories
		api.GET("/products/:id", productcontroller.GetProductByID(d.API))          // GET /api/products/:id
	}
}

// SetupProtectedRoutes registers everything behind the session cookie gate.
func SetupProtectedRoutes(r *gin.Engine, d Deps) {
	auth := r.Group("/api")
	auth.Use(middleware.RequireSession())
	{
		// ──────────────── Shopping Cart ────────────────
		auth.GET("/cart", cartControllers.GetCart(d.Carts))                              // GET /api/cart
		auth.DELETE("/cart", cartControllers.ClearCart(d.Carts))                         // DELETE /api/cart
		auth.POST("/cart/items", cartControllers.AddItem(d.Carts))                       // POST /api/cart/items
		auth.GET("/cart/items/:product_id", cartControllers.ContainsItem(d.Carts))       // GET /api/cart/items/:product_id
		auth.PUT("/cart/items/:product_id", cartControllers.UpdateItemQuantity(d.Carts)) // PUT /api/cart/items/:product_id
		auth.DELETE("/cart/items/:product_id", cartControllers.DeleteItem(d.Carts))      // DELETE /api/cart/items/:product_id
		auth.POST("/cart/checkout", cartControllers.Checkout(d.Carts, d.Mailer))         // POST /api/cart/checkout
		auth.GET("/cart/ws", cartControllers.CartFeed(d.Carts))                          // GET /api/cart/ws

		// ──────────────── Remote cart passthrough ────────────────
		auth.POST("/cart/add", cartControllers.AddToRemoteCart(d.API)) // POST /api/cart/add
		auth.GET("/cart/user", cartControllers.GetRemoteCart(d.API))   // GET /api/cart/user

		// ──────────────── Incremental browsing ────────────────
		auth.GET("/browse", browsecontroller.GetListing(d.Browse, d.API)) // GET /api/browse
		auth.POST("/browse/search", browsecontroller.Search(d.Browse))    // POST /api/browse/search
		auth.POST("/browse/more", browsecontroller.LoadMore(d.Browse))    // POST /api/browse/more

		// ──────────────── Files ────────────────
		auth.POST("/upload", uploadcontroller.UploadFile(d.UploadDir))            // POST /api/upload
		auth.GET("/products/export", productcontroller.ExportProductsToExcel(d.API)) // GET /api/products/export
	}
}
