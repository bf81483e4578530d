package config

import (
	"testing"
	"time"
)

func validAuthConfig() Config {
	return Config{
		App:   AppConfig{Env: "local", Port: 8001},
		DB:    DBConfig{URL: "postgres://postgres:x@localhost:5432/auth"},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Auth:  AuthConfig{SecretKey: "secret"},
	}
}

func TestValidate_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(ServiceAuth); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_AuthDefaults(t *testing.T) {
	c := validAuthConfig()
	if err := c.Validate(ServiceAuth); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Auth.Algorithm != "HS256" {
		t.Fatalf("expected HS256 default, got %q", c.Auth.Algorithm)
	}
	if c.Auth.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m access TTL default, got %v", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7d refresh TTL default, got %v", c.Auth.RefreshTokenTTL)
	}
	if c.Auth.LoginAttemptLimit != 10 || c.Auth.LoginAttemptWindow != time.Minute {
		t.Fatalf("unexpected login attempt defaults: %d/%v", c.Auth.LoginAttemptLimit, c.Auth.LoginAttemptWindow)
	}
}

func TestValidate_RejectsUnknownAlgorithm(t *testing.T) {
	c := validAuthConfig()
	c.Auth.Algorithm = "RS256"
	if err := c.Validate(ServiceAuth); err == nil {
		t.Fatalf("expected error for non-HMAC algorithm")
	}
}

func TestValidate_RefreshMustOutliveAccess(t *testing.T) {
	c := validAuthConfig()
	c.Auth.AccessTokenTTL = 2 * time.Hour
	c.Auth.RefreshTokenTTL = time.Hour
	if err := c.Validate(ServiceAuth); err == nil {
		t.Fatalf("expected error when refresh TTL <= access TTL")
	}
}

func TestValidate_DownstreamRequiresAuthServiceURL(t *testing.T) {
	c := Config{
		App: AppConfig{Env: "local", Port: 8003},
		DB:  DBConfig{URL: "postgres://postgres:x@localhost:5432/blog"},
	}
	if err := c.Validate(ServiceBlog); err == nil {
		t.Fatalf("expected error without AUTH_SERVICE_URL")
	}

	c.AuthClient.BaseURL = "http://auth:8001"
	if err := c.Validate(ServiceBlog); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.AuthClient.Timeout != 3*time.Second {
		t.Fatalf("expected 3s introspection timeout default, got %v", c.AuthClient.Timeout)
	}
}

func TestValidate_RejectsUnknownEnv(t *testing.T) {
	c := validAuthConfig()
	c.App.Env = "testing"
	if err := c.Validate(ServiceAuth); err == nil {
		t.Fatalf("expected error for unknown APP_ENV")
	}
}

func TestHTTPAddrAndRedisAddr(t *testing.T) {
	c := validAuthConfig()
	if c.HTTPAddr() != ":8001" {
		t.Fatalf("unexpected http addr %q", c.HTTPAddr())
	}
	if c.RedisAddr() != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", c.RedisAddr())
	}
}
