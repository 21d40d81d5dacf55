package middleware

import (
	"net/http"
	"strings"

	"bilelaskri123/shop-api/pkg/security"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other scheme, or a missing header, fails.
func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.Request.Header.Get("Authorization"))
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// RequireAuth rejects requests that don't carry a valid bearer token.
// On success the verified identity is attached to the context as
// userID and userRole for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing or invalid authorization header",
				"requestID": requestID,
			})
			return
		}

		claims, err := security.ParseSessionToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid or expired",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}
