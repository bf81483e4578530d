package authclient

import (
	"errors"
	"net/http"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequireIdentity authenticates an inbound request by introspecting its bearer
// token against the auth service, then injects the identity into the request
// context. An unreachable auth service is surfaced as 503, not 401.
func RequireIdentity(c *Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := auth.ExtractBearerToken(ctx.GetHeader(auth.HeaderName()))
		if err != nil {
			ctx.Header("WWW-Authenticate", "Bearer")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		id, err := c.Introspect(ctx.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnavailable):
				logger.FromGin(ctx).Error("introspection unavailable", "err", err)
				ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": ErrUnavailable.Error()})
			default:
				ctx.Header("WWW-Authenticate", "Bearer")
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticated.Error()})
			}
			return
		}

		ctx.Request = ctx.Request.WithContext(auth.WithIdentity(ctx.Request.Context(), id))
		ctx.Next()
	}
}
