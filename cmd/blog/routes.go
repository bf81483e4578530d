package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/authclient"
	"github.com/Sherlyzahra/knowledge-sharing/internal/blog"
	"github.com/Sherlyzahra/knowledge-sharing/internal/rbac"
	"github.com/Sherlyzahra/knowledge-sharing/internal/user"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/metrics"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/utils"

	"github.com/gin-gonic/gin"
)

func registerRoutes(r *gin.Engine, h blog.Handlers, introspector *authclient.Client, m *metrics.Metrics, db *sql.DB) {
	r.GET("/healthz", func(c *gin.Context) {
		if err := utils.HealthCheck(c.Request.Context(), db, 2*time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// Reads are public; the view counter still ticks for anonymous readers.
	blogs := r.Group("/blogs")
	{
		blogs.GET("", h.List)
		blogs.GET("/:blog_id", h.Get)
		blogs.GET("/user/:user_id", h.ListByUser)

		authed := blogs.Group("")
		authed.Use(authclient.RequireIdentity(introspector))
		{
			authed.POST("", h.Create)
			authed.PUT("/:blog_id", h.Update)
			authed.DELETE("/:blog_id", h.Delete)
		}
	}

	admin := r.Group("/admin")
	admin.Use(authclient.RequireIdentity(introspector), rbac.RequireRole(user.RoleAdmin))
	{
		admin.DELETE("/blogs/:blog_id", h.ModerationDelete)
	}
}
