package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imamnura/mini-ecommerce-api/catalog"
	"github.com/imamnura/mini-ecommerce-api/middleware"
)

// AddToRemoteCart forwards an add to the remote cart aggregate and relays
// the response. The local store remains the quantity of record; the remote
// aggregate is never read back into it.
// POST /api/cart/add
func AddToRemoteCart(api *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var input struct {
			ProductID int `json:"productId" binding:"required"`
			Quantity  int `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		data, err := api.AddToCart(c.Request.Context(), userID, input.ProductID, input.Quantity)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach cart service"})
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	}
}

// GetRemoteCart relays the remote cart aggregate for the logged-in user.
// GET /api/cart/user
func GetRemoteCart(api *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		data, err := api.UserCarts(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach cart service"})
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	}
}
