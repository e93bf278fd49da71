package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// ProtectPages guards the storefront page routes. Visitors without a session
// token are redirected to the login page carrying the path they wanted in a
// return-to parameter; a logged-in visitor hitting the login page is pushed
// forward to the product listing.
func ProtectPages() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		token, _ := c.Cookie("token")

		protected := strings.HasPrefix(path, "/products") || strings.HasPrefix(path, "/cart")
		if protected && token == "" {
			c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(path))
			c.Abort()
			return
		}

		if path == "/login" && token != "" {
			c.Redirect(http.StatusFound, "/products")
			c.Abort()
			return
		}

		c.Next()
	}
}
