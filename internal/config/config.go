package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Service selects which binary the configuration is loaded for. The three
// services share one env surface but validate different subsets of it.
type Service string

const (
	ServiceAuth Service = "auth"
	ServiceBlog Service = "blog"
	ServiceQnA  Service = "qna"
)

// Config holds all configuration required by a service process.
// All values must come from env (or env-file loaded by the process runner).
// No business logic should depend on raw environment variables.
type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	Auth       AuthConfig
	AuthClient AuthClientConfig
}

type AppConfig struct {
	Env  string
	Port int
}

type DBConfig struct {
	// URL is the full Postgres DSN. It contains secrets; never log it.
	URL string
}

type RedisConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	// SecretKey signs tokens; shared by issuance and verification.
	SecretKey string
	// Algorithm is the HMAC signing algorithm name (HS256, HS384, HS512).
	Algorithm string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Login brute-force protection (fixed window per client IP).
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
}

type AuthClientConfig struct {
	// BaseURL of the auth service used for token introspection.
	BaseURL string
	// Timeout bounds each introspection round trip.
	Timeout time.Duration
}

func Load(svc Service) (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.DB.URL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if svc == ServiceAuth {
		c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
		{
			n, err := mustInt("REDIS_PORT")
			n, parseErrs = appendParseErr(parseErrs, n, err)
			c.Redis.Port = n
		}

		c.Auth.SecretKey = os.Getenv("SECRET_KEY")
		c.Auth.Algorithm = strings.TrimSpace(os.Getenv("ALGORITHM"))
		// Lifetimes are optional; defaults applied in Validate().
		c.Auth.AccessTokenTTL = optionalMinutes("ACCESS_TOKEN_EXPIRE_MINUTES")
		c.Auth.RefreshTokenTTL = optionalDays("REFRESH_TOKEN_EXPIRE_DAYS")
		c.Auth.LoginAttemptLimit = optionalInt("LOGIN_ATTEMPT_LIMIT")
		c.Auth.LoginAttemptWindow = optionalDuration("LOGIN_ATTEMPT_WINDOW")
	} else {
		c.AuthClient.BaseURL = strings.TrimSpace(os.Getenv("AUTH_SERVICE_URL"))
		c.AuthClient.Timeout = optionalDuration("AUTH_CLIENT_TIMEOUT")
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(svc); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate(svc Service) error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}
	if c.DB.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	switch svc {
	case ServiceAuth:
		if c.Redis.Host == "" {
			errs = append(errs, errors.New("REDIS_HOST is required"))
		}
		if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
		}
		if c.Auth.SecretKey == "" {
			errs = append(errs, errors.New("SECRET_KEY is required"))
		}
		if c.Auth.Algorithm == "" {
			c.Auth.Algorithm = "HS256"
		}
		if !isValidAlgorithm(c.Auth.Algorithm) {
			errs = append(errs, fmt.Errorf("ALGORITHM must be one of HS256, HS384, HS512, got %q", c.Auth.Algorithm))
		}
		if c.Auth.AccessTokenTTL <= 0 {
			// Default: short-lived access tokens.
			c.Auth.AccessTokenTTL = 30 * time.Minute
		}
		if c.Auth.RefreshTokenTTL <= 0 {
			// Default: longer-lived refresh tokens.
			c.Auth.RefreshTokenTTL = 7 * 24 * time.Hour
		}
		if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
			errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRE_DAYS must exceed ACCESS_TOKEN_EXPIRE_MINUTES"))
		}
		if c.Auth.LoginAttemptLimit <= 0 {
			c.Auth.LoginAttemptLimit = 10
		}
		if c.Auth.LoginAttemptWindow <= 0 {
			c.Auth.LoginAttemptWindow = time.Minute
		}
	case ServiceBlog, ServiceQnA:
		if c.AuthClient.BaseURL == "" {
			errs = append(errs, errors.New("AUTH_SERVICE_URL is required"))
		}
		if c.AuthClient.Timeout <= 0 {
			// Bounded introspection round trip; never hang on the auth service.
			c.AuthClient.Timeout = 3 * time.Second
		}
	default:
		errs = append(errs, fmt.Errorf("unknown service %q", svc))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalInt(key string) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func optionalMinutes(key string) time.Duration {
	return time.Duration(optionalInt(key)) * time.Minute
}

func optionalDays(key string) time.Duration {
	return time.Duration(optionalInt(key)) * 24 * time.Hour
}

func optionalDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidAlgorithm(v string) bool {
	switch v {
	case "HS256", "HS384", "HS512":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
