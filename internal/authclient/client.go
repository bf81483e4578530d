// Package authclient delegates identity verification to the auth service.
//
// Downstream services hold no signing secret and no local verification logic:
// every protected request costs one synchronous introspection round trip. The
// call is bounded by the client timeout and its failure modes are kept
// distinct: a rejected token is a client error, an unreachable auth service
// is an infrastructure error.
package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Sherlyzahra/knowledge-sharing/internal/auth"
)

var (
	// ErrUnauthenticated means the auth service rejected the token.
	ErrUnauthenticated = errors.New("invalid authentication credentials")

	// ErrUnavailable means the introspection call itself failed at the
	// transport level. Callers must map this to a 5xx, never a 401.
	ErrUnavailable = errors.New("auth service unavailable")
)

const introspectionPath = "/auth/me"

// Client calls the auth service's identity-introspection endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("auth service base URL is required")
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Introspect forwards the caller's bearer token verbatim and maps the outcome:
// 200 yields the resolved identity, any other status yields ErrUnauthenticated,
// and a transport failure (refused, timed out) yields ErrUnavailable.
func (c *Client) Introspect(ctx context.Context, token string) (auth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+introspectionPath, nil)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set(auth.HeaderName(), "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return auth.Identity{}, ErrUnauthenticated
	}

	var id auth.Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return auth.Identity{}, fmt.Errorf("%w: decode identity: %v", ErrUnavailable, err)
	}
	if id.ID == 0 {
		return auth.Identity{}, ErrUnauthenticated
	}
	return id, nil
}
