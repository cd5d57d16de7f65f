package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bilal-Yasir34/apex-store/auth"
)

// RequireAdmin gates the admin surface. Dashboards authenticate with a JWT
// whose email is on the ADMIN_EMAILS allow-list; back-office scripts may use
// the static X-API-KEY instead.
func RequireAdmin(c *gin.Context) {
	if apiKey := c.GetHeader("X-API-KEY"); apiKey != "" && apiKey == os.Getenv("ADMIN_API_KEY") {
		c.Next()
		return
	}

	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing credentials"})
		c.Abort()
		return
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	email, _ := claims["email"].(string)
	if !auth.IsAdminEmail(email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		c.Abort()
		return
	}

	c.Set("user_id", claims["user_id"])
	c.Set("email", email)
	c.Set("role", "admin")

	c.Next()
}
