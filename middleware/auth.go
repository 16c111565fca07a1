package middleware

import (
	"net/http"
	"strings"

	"schoolhealth/utils"

	"github.com/gin-gonic/gin"
)

const RoleParent = "parent"

// JWTAuthParentMiddleware accepts bearer tokens whose role is "parent" and
// stores the parent ID under "parentID".
func JWTAuthParentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		parentID, role, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if role != RoleParent {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Only parents can manage appointments"})
			return
		}

		c.Set("parentID", parentID)
		c.Next()
	}
}
