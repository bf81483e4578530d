package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/authclient"
	"github.com/Sherlyzahra/knowledge-sharing/internal/qna"
	"github.com/Sherlyzahra/knowledge-sharing/internal/rbac"
	"github.com/Sherlyzahra/knowledge-sharing/internal/user"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/metrics"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/utils"

	"github.com/gin-gonic/gin"
)

func registerRoutes(r *gin.Engine, h qna.Handlers, introspector *authclient.Client, m *metrics.Metrics, db *sql.DB) {
	r.GET("/healthz", func(c *gin.Context) {
		if err := utils.HealthCheck(c.Request.Context(), db, 2*time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	questions := r.Group("/questions")
	{
		questions.GET("", h.ListQuestions)
		questions.GET("/:question_id", h.GetQuestion)
		questions.GET("/:question_id/answers", h.ListAnswers)
		questions.GET("/:question_id/votes", h.QuestionVotes)

		authed := questions.Group("")
		authed.Use(authclient.RequireIdentity(introspector))
		{
			authed.POST("", h.CreateQuestion)
			authed.PUT("/:question_id", h.UpdateQuestion)
			authed.DELETE("/:question_id", h.DeleteQuestion)
			authed.POST("/:question_id/answers", h.CreateAnswer)
			authed.POST("/:question_id/votes", h.CastVote)
		}
	}

	votes := r.Group("/votes")
	votes.Use(authclient.RequireIdentity(introspector))
	{
		votes.DELETE("/:vote_id", h.RetractVote)
	}

	admin := r.Group("/admin")
	admin.Use(authclient.RequireIdentity(introspector), rbac.RequireRole(user.RoleAdmin))
	{
		admin.DELETE("/questions/:question_id", h.ModerationDeleteQuestion)
	}
}
