package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
)

// Service is the authentication orchestrator running inside the auth service.
//
// Login contract:
// - Unknown username and wrong password collapse into one error so callers
//   cannot enumerate usernames.
// - An inactive account is reported distinctly, but only after the password
//   matched.
type Service struct {
	repo  Repository
	codec *auth.Manager
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(repo Repository, codec *auth.Manager) *Service {
	return &Service{repo: repo, codec: codec, clock: time.Now}
}

var (
	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidRole   = errors.New("invalid role_id")
)

type RegisterParams struct {
	Username string
	Email    string
	Password string
	FullName string
	RoleID   *int64
}

// Register creates a new identity. When no role is requested the default
// "user" role is attached if it has been seeded.
func (s *Service) Register(ctx context.Context, p RegisterParams) (User, error) {
	if _, err := s.repo.FindByUsername(ctx, p.Username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if _, err := s.repo.FindByEmail(ctx, p.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	roleID := p.RoleID
	roleName := ""
	if roleID == nil {
		if role, err := s.repo.FindRoleByName(ctx, RoleUser); err == nil {
			id := role.ID
			roleID = &id
			roleName = role.Name
		} else if !errors.Is(err, ErrNotFound) {
			return User{}, err
		}
	} else {
		role, err := s.repo.FindRoleByID(ctx, *roleID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return User{}, ErrInvalidRole
			}
			return User{}, err
		}
		roleName = role.Name
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Username:     p.Username,
		Email:        p.Email,
		FullName:     p.FullName,
		PasswordHash: hash,
		RoleID:       roleID,
		RoleName:     roleName,
	}
	if err := s.repo.CreateUser(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.TokenPair{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPair{}, err
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return auth.TokenPair{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.TokenPair{}, auth.ErrAccountInactive
	}
	return s.codec.IssuePair(s.clock(), u.ID, u.Username, u.RoleID)
}

// Refresh mints a brand-new pair from a refresh token. Access-kind tokens are
// rejected here; old tokens stay independently valid until their own expiry.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, auth.TokenTypeRefresh, s.clock())
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	id, err := claims.UserID()
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.TokenPair{}, auth.ErrInvalidToken
		}
		return auth.TokenPair{}, err
	}
	if !u.IsActive {
		return auth.TokenPair{}, auth.ErrAccountInactive
	}
	return s.codec.IssuePair(s.clock(), u.ID, u.Username, u.RoleID)
}

// CurrentUser resolves an access token into the full identity record.
// This backs GET /auth/me, which downstream services call for introspection.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (User, error) {
	claims, err := s.codec.Verify(accessToken, auth.TokenTypeAccess, s.clock())
	if err != nil {
		return User{}, auth.ErrInvalidToken
	}
	id, err := claims.UserID()
	if err != nil {
		return User{}, auth.ErrInvalidToken
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, auth.ErrInvalidToken
		}
		return User{}, err
	}
	if !u.IsActive {
		return User{}, auth.ErrAccountInactive
	}
	return u, nil
}

// ListUsers backs the admin-only user listing.
func (s *Service) ListUsers(ctx context.Context, skip, limit int) ([]User, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListUsers(ctx, skip, limit)
}
