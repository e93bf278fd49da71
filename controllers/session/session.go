package sessionControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/imamnura/mini-ecommerce-api/catalog"
	"github.com/imamnura/mini-ecommerce-api/models"
)

// sessionMaxAge is the cookie lifetime, matching the expiry requested from
// the remote auth service.
const sessionMaxAge = 3600

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials with the remote auth service and stores the
// issued token plus the user id in httpOnly cookies.
func Login(api *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
			return
		}

		result, err := api.Login(c.Request.Context(), input.Username, input.Password, 60)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}

		token := result.BearerToken()
		maxAge := cookieMaxAge(token)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie("token", token, maxAge, "/", "", false, true)
		c.SetCookie("userId", strconv.Itoa(result.ID), maxAge, "/", "", false, true)
		if result.Username != "" {
			c.SetCookie("username", result.Username, maxAge, "/", "", false, true)
		}

		c.JSON(http.StatusOK, gin.H{
			"user": models.User{ID: result.ID, Username: result.Username},
		})
	}
}

// Me reflects the session cookies back to the caller.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		rawID, err2 := c.Cookie("userId")
		if err != nil || err2 != nil || token == "" || rawID == "" {
			c.JSON(http.StatusOK, gin.H{"authenticated": false, "user": nil})
			return
		}

		id, _ := strconv.Atoi(rawID)
		user := models.User{ID: id, Token: token}
		if username, err := c.Cookie("username"); err == nil {
			user.Username = username
		}
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "user": user})
	}
}

// Logout expires the session cookies, including the cached username.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		for _, name := range []string{"token", "userId", "username"} {
			c.SetCookie(name, "", -1, "/", "", false, true)
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// cookieMaxAge caps the cookie lifetime at the token's own expiry when the
// token happens to be a JWT carrying an exp claim. The token is otherwise
// treated as an opaque string; nothing here validates it.
func cookieMaxAge(token string) int {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return sessionMaxAge
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return sessionMaxAge
	}
	remaining := int(time.Until(exp.Time).Seconds())
	if remaining <= 0 || remaining > sessionMaxAge {
		return sessionMaxAge
	}
	return remaining
}
