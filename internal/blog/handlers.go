package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups the blog service HTTP handlers for dependency injection.
type Handlers struct {
	Blogs *Service
}

type createBlogRequest struct {
	Title       string `json:"title" binding:"required,min=5,max=255"`
	Content     string `json:"content" binding:"required,min=50"`
	Summary     string `json:"summary" binding:"omitempty,max=500"`
	IsPublished *bool  `json:"is_published"`
}

func (h Handlers) Create(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	b, err := h.Blogs.Create(c.Request.Context(), id.ID, CreateParams{
		Title:       req.Title,
		Content:     req.Content,
		Summary:     req.Summary,
		IsPublished: published,
	})
	if err != nil {
		logger.FromGin(c).Error("create blog failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h Handlers) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	publishedOnly := c.DefaultQuery("published_only", "true") != "false"

	blogs, err := h.Blogs.List(c.Request.Context(), skip, limit, publishedOnly)
	if err != nil {
		logger.FromGin(c).Error("list blogs failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	if blogs == nil {
		blogs = []Blog{}
	}
	c.JSON(http.StatusOK, blogs)
}

func (h Handlers) Get(c *gin.Context) {
	id, ok := paramID(c, "blog_id")
	if !ok {
		return
	}

	b, err := h.Blogs.Get(c.Request.Context(), id)
	if err != nil {
		respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h Handlers) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	blogs, err := h.Blogs.ListByUser(c.Request.Context(), userID, skip, limit)
	if err != nil {
		logger.FromGin(c).Error("list user blogs failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	if blogs == nil {
		blogs = []Blog{}
	}
	c.JSON(http.StatusOK, blogs)
}

type updateBlogRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=5,max=255"`
	Content     *string `json:"content" binding:"omitempty,min=50"`
	Summary     *string `json:"summary" binding:"omitempty,max=500"`
	IsPublished *bool   `json:"is_published"`
}

func (h Handlers) Update(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := paramID(c, "blog_id")
	if !ok {
		return
	}

	var req updateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.Blogs.Update(c.Request.Context(), id, identity.ID, UpdateParams{
		Title:       req.Title,
		Content:     req.Content,
		Summary:     req.Summary,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		respondBlogError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h Handlers) Delete(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := paramID(c, "blog_id")
	if !ok {
		return
	}

	if err := h.Blogs.Delete(c.Request.Context(), id, identity.ID); err != nil {
		respondBlogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ModerationDelete removes any article; the route is admin-gated.
func (h Handlers) ModerationDelete(c *gin.Context) {
	id, ok := paramID(c, "blog_id")
	if !ok {
		return
	}

	if err := h.Blogs.ModerationDelete(c.Request.Context(), id); err != nil {
		respondBlogError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondBlogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "blog not found"})
	case errors.Is(err, ErrNotOwner):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized for this blog"})
	default:
		logger.FromGin(c).Error("blog operation failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}
