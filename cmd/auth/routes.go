package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/rbac"
	"github.com/Sherlyzahra/knowledge-sharing/internal/user"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/metrics"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/utils"

	"github.com/gin-gonic/gin"
)

func registerRoutes(r *gin.Engine, h user.Handlers, m *metrics.Metrics, db *sql.DB) {
	r.GET("/healthz", func(c *gin.Context) {
		if err := utils.HealthCheck(c.Request.Context(), db, 2*time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)

		protected := authGroup.Group("")
		protected.Use(h.Authenticated())
		{
			protected.GET("/me", h.Me)
			protected.GET("/users", rbac.RequireRole(user.RoleAdmin), h.ListUsers)
		}
	}
}
