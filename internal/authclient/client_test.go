package authclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"

	"github.com/gin-gonic/gin"
)

func TestIntrospectSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/me" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			t.Errorf("token not forwarded, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 7, "username": "alice", "role": "admin", "is_active": true}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	id, err := c.Introspect(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("introspect: %v", err)
	}
	if id.ID != 7 || id.Username != "alice" || id.Role != "admin" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestIntrospectNon200IsUnauthenticated(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusBadRequest, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c, err := New(srv.URL, time.Second)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if _, err := c.Introspect(context.Background(), "tok"); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("status %d: expected ErrUnauthenticated, got %v", status, err)
		}
		srv.Close()
	}
}

func TestIntrospectTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, err := New(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := c.Introspect(context.Background(), "tok"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestIntrospectRejectsEmptyIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := c.Introspect(context.Background(), "tok"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("  ", time.Second); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestRequireIdentityStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer good" {
			w.Write([]byte(`{"id": 1, "username": "alice", "is_active": true}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer authSrv.Close()

	newRouter := func(c *Client) *gin.Engine {
		r := gin.New()
		r.GET("/protected", RequireIdentity(c), func(ctx *gin.Context) {
			id, _ := auth.IdentityFromContext(ctx.Request.Context())
			ctx.JSON(http.StatusOK, id)
		})
		return r
	}

	c, err := New(authSrv.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r := newRouter(c)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"rejected token", "Bearer bad", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic Zm9v", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, w.Code)
		}
	}

	// Outage path: auth service unreachable must yield 503, never 401.
	downSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	downSrv.Close()
	cDown, err := New(downSrv.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	rDown := newRouter(cDown)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	rDown.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when auth service is down, got %d", w.Code)
	}
}
