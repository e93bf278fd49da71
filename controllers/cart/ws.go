package cartControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/imamnura/mini-ecommerce-api/cart"
	"github.com/imamnura/mini-ecommerce-api/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CartFeed streams the cart summary to the client: once on connect and then
// after every mutation, so badges stay current without polling.
// GET /api/cart/ws
func CartFeed(carts *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		store := carts.For(userID)

		var writeMu sync.Mutex
		send := func(sum cart.Summary) {
			data, err := json.Marshal(sum)
			if err != nil {
				return
			}
			writeMu.Lock()
			conn.WriteMessage(websocket.TextMessage, data)
			writeMu.Unlock()
		}

		send(store.Summary())
		unsubscribe := store.Subscribe(send)
		defer unsubscribe()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
