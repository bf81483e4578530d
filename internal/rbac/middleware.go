// Package rbac provides role gates composed after identity resolution.
//
// The role model is flat: one role per user, matched by exact name. There is
// no hierarchy: admin does not implicitly satisfy a user requirement.
package rbac

import (
	"net/http"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireRole allows access only when the resolved identity carries exactly
// the required role. An identity with no role at all is rejected.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if id.Role == "" || id.Role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}
