package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// RequireSession gates API routes on the session cookies issued at login and
// exposes the numeric user id to handlers. The page guard already keeps
// unauthenticated visitors away from the views; this is the second gate at
// the API itself.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		rawID, err2 := c.Cookie("userId")
		if err != nil || err2 != nil || token == "" || rawID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		id, convErr := strconv.Atoi(rawID)
		if convErr != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID returns the id stored by RequireSession.
func UserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
