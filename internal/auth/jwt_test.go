package auth

import (
	"testing"
	"time"
)

func testManager(t *testing.T, secret string) *Manager {
	t.Helper()
	m, err := NewManager(ManagerConfig{
		SecretKey:       secret,
		Algorithm:       "HS256",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m := testManager(t, "secret")
	now := time.Unix(1700000000, 0).UTC()
	roleID := int64(2)

	pair, err := m.IssuePair(now, 42, "alice", &roleID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token strings")
	}
	if pair.TokenType != "bearer" {
		t.Fatalf("expected bearer token type, got %q", pair.TokenType)
	}

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if id != 42 || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.RoleID == nil || *claims.RoleID != 2 {
		t.Fatalf("unexpected role id: %v", claims.RoleID)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := testManager(t, "secret")
	now := time.Unix(1700000000, 0).UTC()

	pair, err := m.IssuePair(now, 1, "bob", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(31*time.Minute)); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := testManager(t, "secret-a")
	verifier := testManager(t, "secret-b")
	now := time.Unix(1700000000, 0).UTC()

	pair, err := issuer.IssuePair(now, 1, "bob", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(pair.AccessToken, TokenTypeAccess, now); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	m := testManager(t, "secret")
	now := time.Unix(1700000000, 0).UTC()

	pair, err := m.IssuePair(now, 1, "bob", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(pair.RefreshToken, TokenTypeAccess, now); err != ErrInvalidToken {
		t.Fatalf("expected rejection of refresh token on access check, got %v", err)
	}
	if _, err := m.Verify(pair.AccessToken, TokenTypeRefresh, now); err != ErrInvalidToken {
		t.Fatalf("expected rejection of access token on refresh check, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := testManager(t, "secret")
	if _, err := m.Verify("not-a-token", TokenTypeAccess, time.Now()); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewManagerRejectsNonHMAC(t *testing.T) {
	_, err := NewManager(ManagerConfig{
		SecretKey:       "secret",
		Algorithm:       "RS256",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	if err == nil {
		t.Fatalf("expected error for non-HMAC algorithm")
	}
}
