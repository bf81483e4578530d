package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
)

func testCodec(t *testing.T) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager(auth.ManagerConfig{
		SecretKey:       "test-secret",
		Algorithm:       "HS256",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func seededService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	if err := repo.EnsureRoles(context.Background(), DefaultRoles); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return NewService(repo, testCodec(t)), repo
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	svc, _ := seededService(t)

	u, err := svc.Register(context.Background(), RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if u.RoleName != RoleUser {
		t.Fatalf("expected default role %q, got %q", RoleUser, u.RoleName)
	}
	if u.PasswordHash == "hunter22" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{Username: "alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterParams{Username: "alice", Email: "other@example.com", Password: "hunter22"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterParams{Username: "bob", Email: "alice@example.com", Password: "hunter22"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := seededService(t)
	badRole := int64(999)
	_, err := svc.Register(context.Background(), RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
		RoleID:   &badRole,
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

// Wrong password and unknown username must be indistinguishable to callers.
func TestLoginCollapsesCredentialErrors(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{Username: "alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, errWrongPassword := svc.Login(ctx, "alice", "not-the-password")
	_, errUnknownUser := svc.Login(ctx, "nobody", "hunter22")

	if !errors.Is(errWrongPassword, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, auth.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatalf("credential errors must be indistinguishable: %q vs %q",
			errWrongPassword.Error(), errUnknownUser.Error())
	}
}

func TestLoginInactiveAccountIsDistinct(t *testing.T) {
	svc, repo := seededService(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.Put(User{Username: "carol", Email: "carol@example.com", PasswordHash: hash, IsActive: false})

	if _, err := svc.Login(ctx, "carol", "hunter22"); !errors.Is(err, auth.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
	// A wrong password on an inactive account must not leak the inactive state.
	if _, err := svc.Login(ctx, "carol", "bad"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginThenCurrentUser(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Login(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	u, err := svc.CurrentUser(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if u.ID != registered.ID || u.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", u)
	}
}

func TestCurrentUserRejectsRefreshToken(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{Username: "alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.CurrentUser(ctx, pair.RefreshToken); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, _ := seededService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterParams{Username: "alice", Email: "alice@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if fresh.AccessToken == "" || fresh.RefreshToken == "" {
		t.Fatalf("expected a full new pair")
	}

	// An access token must not be accepted on the refresh path.
	if _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token, got %v", err)
	}
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	svc, repo := seededService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterParams{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	u.IsActive = false
	repo.Put(u)

	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, auth.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestListUsersClampsPagination(t *testing.T) {
	svc, repo := seededService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		repo.Put(User{Username: string(rune('a' + i)), Email: string(rune('a'+i)) + "@example.com", IsActive: true})
	}

	out, err := svc.ListUsers(ctx, -5, -1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Memory repo also holds the seeded roles' id space; users only are returned.
	if len(out) != 3 {
		t.Fatalf("expected 3 users, got %d", len(out))
	}
}
