package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imamnura/mini-ecommerce-api/cart"
	"github.com/imamnura/mini-ecommerce-api/mail"
)

// ConfirmationMailer is the slice of the mailer checkout needs.
type ConfirmationMailer interface {
	SendOrderConfirmation(to, customer string, items []mail.OrderItem, total float64) error
}

type checkoutInput struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// Checkout emails an order confirmation for the current cart contents, then
// empties the cart. Payment is out of scope; this is the storefront's dummy
// checkout.
// POST /api/cart/checkout
func Checkout(carts *cart.Registry, mailer ConfirmationMailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}

		var input checkoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		lines := store.Lines()
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		items := make([]mail.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, mail.OrderItem{
				Name:     line.Title,
				Quantity: line.Quantity,
				Price:    line.Price,
			})
		}
		name := input.Name
		if name == "" {
			name = input.Email
		}

		if err := mailer.SendOrderConfirmation(input.Email, name, items, store.Summary().TotalPrice); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send confirmation email"})
			return
		}

		store.Clear()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order confirmed"})
	}
}
