package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auction-backend/pkg/jwt"
)

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the request context. The email claim is the bidder
// identity used by the bid domain.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if claims.Email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token has no email claim"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// GetBidderEmail returns the authenticated caller's email, if any.
func GetBidderEmail(c *gin.Context) (string, bool) {
	email := c.GetString("email")
	return email, email != ""
}
