package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/imamnura/mini-ecommerce-api/cart"
	"github.com/imamnura/mini-ecommerce-api/catalog"
	browsecontroller "github.com/imamnura/mini-ecommerce-api/controllers/browse"
	cartControllers "github.com/imamnura/mini-ecommerce-api/controllers/cart"
)

// Deps carries everything the route tree needs, constructed once at the
// composition point in main.
type Deps struct {
	API       *catalog.Client
	Carts     *cart.Registry
	Browse    *browsecontroller.Manager
	Mailer    cartControllers.ConfirmationMailer
	UploadDir string
}

// SetupRoutes is the single entry-point that wires up the public API, the
// session-protected API and the guarded page routes.
func SetupRoutes(r *gin.Engine, d Deps) {
	// 1️⃣ Public API (no session required)
	SetupPublicRoutes(r, d)

	// 2️⃣ Session-protected API (cookie-gated)
	SetupProtectedRoutes(r, d)

	// 3️⃣ Page routes (redirect guard)
	SetupPageRoutes(r)
}
