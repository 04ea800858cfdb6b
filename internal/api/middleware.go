package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slotwise/appointment-backend/internal/auth"
	"github.com/slotwise/appointment-backend/internal/user"
)

// RequireProvider ensures the authenticated user can manage catalog
// entities and slots. It MUST run after auth.AuthRequired. The role is
// re-checked against the database so a revoked provider cannot keep
// acting on an old token.
func RequireProvider(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.IsProvider() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: provider access required"})
			return
		}

		c.Next()
	}
}
