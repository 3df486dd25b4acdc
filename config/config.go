package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinSessionSecretLength is the shortest accepted SESSION_SECRET.
const MinSessionSecretLength = 32

// Config represents the complete application configuration
type Config struct {
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	Server        ServerConfig
	LinkedIn      LinkedInConfig
	Redirects     RedirectConfig
	Session       SessionConfig
	Store         StoreConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"3001"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// LinkedInConfig holds the OpenID Connect client registration and endpoints.
type LinkedInConfig struct {
	ClientID     string        `env:"LINKEDIN_CLIENT_ID"`
	ClientSecret string        `env:"LINKEDIN_CLIENT_SECRET"`
	CallbackURL  string        `env:"LINKEDIN_CALLBACK_URL" envDefault:"http://localhost:3001/auth/login/callback"`
	Scopes       []string      `env:"LINKEDIN_SCOPE" envSeparator:" " envDefault:"openid profile email"`
	IssuerURL    string        `env:"LINKEDIN_ISSUER_URL" envDefault:"https://www.linkedin.com/oauth"`
	AuthURL      string        `env:"LINKEDIN_AUTH_URL" envDefault:"https://www.linkedin.com/oauth/v2/authorization"`
	TokenURL     string        `env:"LINKEDIN_TOKEN_URL" envDefault:"https://www.linkedin.com/oauth/v2/accessToken"`
	UserInfoURL  string        `env:"LINKEDIN_USERINFO_URL" envDefault:"https://api.linkedin.com/v2/userinfo"`
	JWKSURL      string        `env:"LINKEDIN_JWKS_URL" envDefault:"https://www.linkedin.com/oauth/openid/jwks"`
	Timeout      time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
}

// RedirectConfig holds the browser destinations after auth transitions.
type RedirectConfig struct {
	SuccessURL string `env:"LOGIN_SUCCESS_URL" envDefault:"http://localhost:3000/dashboard"`
	FailureURL string `env:"LOGIN_FAILURE_URL" envDefault:"http://localhost:3000"`
	LogoutURL  string `env:"LOGOUT_URL" envDefault:"http://localhost:3000"`
}

// SessionConfig holds the cookie session settings.
type SessionConfig struct {
	Secret   string        `env:"SESSION_SECRET"`
	Name     string        `env:"SESSION_NAME" envDefault:"skillhub.sid"`
	MaxAge   time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`
	StateTTL time.Duration `env:"STATE_TTL" envDefault:"10m"`
}

// StoreConfig selects and tunes the storage backend. The URL scheme picks
// the backend: postgres, mongodb or memory.
type StoreConfig struct {
	URL             string        `env:"STORE_URL" envDefault:"memory://"`
	Timeout         time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	SeedTasks       bool          `env:"STORE_SEED_TASKS" envDefault:"false"`
}

// CORSConfig holds the single browser origin allowed to call the API.
type CORSConfig struct {
	Origin string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json or console
}

// Store backends, keyed by URL scheme.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongodb"
	StoreMemory   = "memory"
)

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if len(c.Session.Secret) < MinSessionSecretLength {
		return fmt.Errorf("session secret must be at least %d characters", MinSessionSecretLength)
	}
	if c.Session.StateTTL <= 0 {
		return fmt.Errorf("state TTL must be positive")
	}

	if _, err := c.Store.Backend(); err != nil {
		return err
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store timeout must be positive")
	}

	if c.LinkedIn.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}
	if len(c.LinkedIn.Scopes) == 0 {
		return fmt.Errorf("linkedin scope is required")
	}
	if c.IsProduction() {
		if c.LinkedIn.ClientID == "" {
			return fmt.Errorf("linkedin client ID is required in production")
		}
		if c.LinkedIn.ClientSecret == "" {
			return fmt.Errorf("linkedin client secret is required in production")
		}
	}

	if c.Redirects.SuccessURL == "" || c.Redirects.FailureURL == "" {
		return fmt.Errorf("login success and failure URLs are required")
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// SecureCookies reports whether cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.IsProduction() || strings.HasPrefix(c.LinkedIn.CallbackURL, "https://")
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Scope returns the scopes as sent to the provider.
func (c *LinkedInConfig) Scope() string {
	return strings.Join(c.Scopes, " ")
}

// Backend returns the storage backend named by the URL scheme.
func (c *StoreConfig) Backend() (string, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("invalid store URL")
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return StorePostgres, nil
	case "mongodb", "mongodb+srv":
		return StoreMongo, nil
	case "memory":
		return StoreMemory, nil
	default:
		return "", fmt.Errorf("unsupported store URL scheme %q", u.Scheme)
	}
}

// LogString returns a safe string for logging (no credentials).
func (c *StoreConfig) LogString() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "<invalid store URL>"
	}
	if u.Scheme == "memory" {
		return "memory"
	}
	return fmt.Sprintf("scheme=%s host=%s database=%s", u.Scheme, u.Host, strings.TrimPrefix(u.Path, "/"))
}
