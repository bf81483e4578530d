package qna

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups the Q&A service HTTP handlers for dependency injection.
type Handlers struct {
	QnA *Service
}

type questionRequest struct {
	Title   string `json:"title" binding:"required,min=10,max=255"`
	Content string `json:"content" binding:"required,min=20"`
}

func (h Handlers) CreateQuestion(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	q, err := h.QnA.CreateQuestion(c.Request.Context(), id.ID, QuestionParams{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		logger.FromGin(c).Error("create question failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h Handlers) ListQuestions(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	questions, err := h.QnA.ListQuestions(c.Request.Context(), skip, limit)
	if err != nil {
		logger.FromGin(c).Error("list questions failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	if questions == nil {
		questions = []Question{}
	}
	c.JSON(http.StatusOK, questions)
}

func (h Handlers) GetQuestion(c *gin.Context) {
	id, ok := paramID(c, "question_id")
	if !ok {
		return
	}

	q, err := h.QnA.GetQuestion(c.Request.Context(), id)
	if err != nil {
		respondQnAError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

type questionUpdateRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=10,max=255"`
	Content *string `json:"content" binding:"omitempty,min=20"`
}

func (h Handlers) UpdateQuestion(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := paramID(c, "question_id")
	if !ok {
		return
	}

	var req questionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	q, err := h.QnA.UpdateQuestion(c.Request.Context(), id, identity.ID, QuestionUpdateParams{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondQnAError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h Handlers) DeleteQuestion(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, ok := paramID(c, "question_id")
	if !ok {
		return
	}

	if err := h.QnA.DeleteQuestion(c.Request.Context(), id, identity.ID); err != nil {
		respondQnAError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ModerationDeleteQuestion removes any question; the route is admin-gated.
func (h Handlers) ModerationDeleteQuestion(c *gin.Context) {
	id, ok := paramID(c, "question_id")
	if !ok {
		return
	}

	if err := h.QnA.ModerationDeleteQuestion(c.Request.Context(), id); err != nil {
		respondQnAError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type answerRequest struct {
	Content string `json:"content" binding:"required,min=10"`
}

func (h Handlers) CreateAnswer(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	questionID, ok := paramID(c, "question_id")
	if !ok {
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	a, err := h.QnA.CreateAnswer(c.Request.Context(), questionID, identity.ID, req.Content)
	if err != nil {
		respondQnAError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h Handlers) ListAnswers(c *gin.Context) {
	questionID, ok := paramID(c, "question_id")
	if !ok {
		return
	}

	answers, err := h.QnA.ListAnswers(c.Request.Context(), questionID)
	if err != nil {
		respondQnAError(c, err)
		return
	}
	if answers == nil {
		answers = []Answer{}
	}
	c.JSON(http.StatusOK, answers)
}

type voteRequest struct {
	VoteType VoteType `json:"vote_type" binding:"required"`
}

func (h Handlers) CastVote(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	questionID, ok := paramID(c, "question_id")
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.VoteType.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "vote_type must be upvote or downvote"})
		return
	}

	v, err := h.QnA.CastVote(c.Request.Context(), questionID, identity.ID, req.VoteType)
	if err != nil {
		respondQnAError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h Handlers) RetractVote(c *gin.Context) {
	identity, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	voteID, ok := paramID(c, "vote_id")
	if !ok {
		return
	}

	if err := h.QnA.RetractVote(c.Request.Context(), voteID, identity.ID); err != nil {
		respondQnAError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) QuestionVotes(c *gin.Context) {
	questionID, ok := paramID(c, "question_id")
	if !ok {
		return
	}

	stats, err := h.QnA.QuestionVotes(c.Request.Context(), questionID)
	if err != nil {
		respondQnAError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func respondQnAError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrQuestionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "question not found"})
	case errors.Is(err, ErrVoteNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "vote not found"})
	case errors.Is(err, ErrNotOwner):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized for this resource"})
	default:
		logger.FromGin(c).Error("qna operation failed", "err", err)
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
