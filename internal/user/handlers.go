package user

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/audit"
	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/logger"
	"github.com/Sherlyzahra/knowledge-sharing/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const currentUserKey = "current_user"

// Handlers groups the auth service HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call the service, return JSON.
type Handlers struct {
	Users *Service

	// Audit is best-effort; nil disables it.
	Audit *audit.Service

	// Redis backs login brute-force protection; nil disables it.
	Redis              *redis.Client
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
	RoleID   *int64 `json:"role_id"`
}

func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	u, err := h.Users.Register(c.Request.Context(), RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		RoleID:   req.RoleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken), errors.Is(err, ErrInvalidRole):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.FromGin(c).Error("register failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	if h.Audit != nil {
		_ = h.Audit.LogRegistration(c.Request.Context(), u.ID, u.Username, c.ClientIP())
	}
	c.JSON(http.StatusCreated, u)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	attemptKey := fmt.Sprintf("login_attempts:%s", c.ClientIP())
	if h.Redis != nil {
		ok, err := utils.AllowAttempt(c.Request.Context(), h.Redis, attemptKey, h.LoginAttemptLimit, h.LoginAttemptWindow)
		if err != nil {
			// Redis being down must not lock everyone out.
			logger.FromGin(c).Warn("login rate limit check failed", "err", err)
		} else if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
	}

	pair, err := h.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if h.Audit != nil {
			_ = h.Audit.LogLogin(c.Request.Context(), req.Username, c.ClientIP(), 0, false)
		}
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrAccountInactive):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.FromGin(c).Error("login failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	if h.Redis != nil {
		_ = utils.ResetAttempts(c.Request.Context(), h.Redis, attemptKey)
	}
	if h.Audit != nil {
		_ = h.Audit.LogLogin(c.Request.Context(), req.Username, c.ClientIP(), 0, true)
	}
	c.JSON(http.StatusOK, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h Handlers) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pair, err := h.Users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrAccountInactive):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		default:
			logger.FromGin(c).Error("refresh failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		}
		return
	}

	if h.Audit != nil {
		_ = h.Audit.LogRefresh(c.Request.Context(), c.ClientIP())
	}
	c.JSON(http.StatusOK, pair)
}

// Me returns the identity resolved by Authenticated. Downstream services use
// this endpoint for token introspection.
func (h Handlers) Me(c *gin.Context) {
	u, ok := CurrentFromGin(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListUsers is admin-gated in routes; pagination mirrors the content services.
func (h Handlers) ListUsers(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.Users.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		logger.FromGin(c).Error("list users failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	if users == nil {
		users = []User{}
	}
	c.JSON(http.StatusOK, users)
}

// Authenticated verifies the bearer token against the local credential store
// and injects the resolved identity. This is the auth service's own guard;
// downstream services use authclient.RequireIdentity instead.
func (h Handlers) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader(auth.HeaderName()))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		u, err := h.Users.CurrentUser(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken):
				c.Header("WWW-Authenticate", "Bearer")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			case errors.Is(err, auth.ErrAccountInactive):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.FromGin(c).Error("authentication failed", "err", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication error"})
			}
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), u.Identity()))
		c.Set(currentUserKey, u)
		c.Next()
	}
}

// CurrentFromGin returns the user stored by Authenticated.
func CurrentFromGin(c *gin.Context) (User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}
