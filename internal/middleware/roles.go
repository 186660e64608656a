package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowedTo restreint l'accès aux rôles listés
func AllowedTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Rôle inconnu"})
			c.Abort()
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'avez pas la permission d'effectuer cette action"})
		c.Abort()
	}
}
