package middleware

import (
	"strings"

	"github.com/chachabrian/covoit-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller from the identity provider's token and
// stores it as userId / userType. Handlers never read identity from bodies.
func AuthMiddleware(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Browsers cannot set headers on a WebSocket upgrade.
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization header or token query parameter required"})
			return
		}

		identity, err := utils.ValidateToken(tokenString, secret, issuer)
		if err != nil {
			utils.LogEvent(GetRequestID(c), "auth", "validate_token", err.Error())
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userId", identity.UserID)
		c.Set("userType", identity.UserType)
		c.Next()
	}
}
