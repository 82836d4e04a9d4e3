package middlewares

import (
	"net/http"
	"strings"

	"arco-factory-manager/utils"

	"github.com/gin-gonic/gin"
)

func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		// JWT numbers decode as float64
		if id, ok := claims["user_id"].(float64); ok {
			c.Set("user_id", uint(id))
		}
		c.Set("name", claims["name"])
		c.Set("role", claims["role"])
		c.Next()
	}
}
