package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/jwt"
)

const CtxUserID = "userID"

type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader || tokenStr == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		id, err := user.ParseID(claims.UserID)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUserID, id)

		c.Next()
	}
}

// UserID is the owner resolved by AuthMiddleware.
func UserID(c *gin.Context) (user.ID, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(user.ID)
	return id, ok
}
