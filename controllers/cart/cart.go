package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imamnura/mini-ecommerce-api/cart"
	"github.com/imamnura/mini-ecommerce-api/middleware"
	"github.com/imamnura/mini-ecommerce-api/models"
)

// AddItemInput carries the add-time snapshot of a product. Quantity is not a
// field: an add always means "one more of this product".
type AddItemInput struct {
	ProductID int     `json:"productId" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
}

type quantityInput struct {
	Quantity int `json:"quantity"`
}

func userStore(c *gin.Context, carts *cart.Registry) (*cart.Store, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return nil, false
	}
	return carts.For(userID), true
}

func cartJSON(s *cart.Store) gin.H {
	sum := s.Summary()
	return gin.H{
		"items":         s.Lines(),
		"totalQuantity": sum.TotalQuantity,
		"totalPrice":    sum.TotalPrice,
		"hydration":     s.State().String(),
	}
}

// GetCart returns the caller's cart with derived totals and the hydration
// state, so clients can tell an empty cart apart from one not loaded yet.
// GET /api/cart
func GetCart(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartJSON(store))
	}
}

// AddItem adds one unit of a product. Re-adding an existing product bumps
// its quantity; the original add's price snapshot is kept.
// POST /api/cart/items
func AddItem(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		store.Add(models.CartLine{
			ProductID: input.ProductID,
			Title:     input.Title,
			Price:     input.Price,
			Thumbnail: input.Thumbnail,
		})
		c.JSON(http.StatusOK, cartJSON(store))
	}
}

// UpdateItemQuantity replaces a line's quantity. Zero or negative removes
// the line; an unknown product id changes nothing.
// PUT /api/cart/items/:product_id
func UpdateItemQuantity(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}

		productID, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var input quantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store.SetQuantity(productID, input.Quantity)
		c.JSON(http.StatusOK, cartJSON(store))
	}
}

// ContainsItem reports whether a product is in the cart.
// GET /api/cart/items/:product_id
func ContainsItem(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}

		productID, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"inCart": store.Contains(productID)})
	}
}

// DeleteItem removes a line. Unknown ids are a no-op, matching the store.
// DELETE /api/cart/items/:product_id
func DeleteItem(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}

		productID, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		store.Remove(productID)
		c.JSON(http.StatusOK, cartJSON(store))
	}
}

// ClearCart empties the cart.
// DELETE /api/cart
func ClearCart(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}
		store.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
