package getlisted

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/getlisted/getlisted-go/internal/tokenstore"
)

// Config holds the environment-driven client settings. All variables carry
// the GETLISTED_ prefix, e.g. GETLISTED_BASE_URL.
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" required:"true"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// TokenFile, when set, persists the session token on disk instead of
	// in process memory.
	TokenFile string `envconfig:"TOKEN_FILE"`

	// Session-restore retry of recoverable failures.
	RestoreMaxAttempts int           `envconfig:"RESTORE_MAX_ATTEMPTS" default:"3"`
	RestoreBaseBackoff time.Duration `envconfig:"RESTORE_BASE_BACKOFF" default:"200ms"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("getlisted", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromEnv builds a Client from environment configuration.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{WithHTTPTimeout(cfg.HTTPTimeout)}
	if cfg.TokenFile != "" {
		base = append(base, WithTokenStore(tokenstore.NewFileStore(cfg.TokenFile)))
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}

// SessionOptions returns the session-store options cfg carries, for callers
// that build the Client and SessionStore separately:
//
//	session := getlisted.NewSessionStore(c, cfg.SessionOptions()...)
func (cfg Config) SessionOptions() []SessionOption {
	return []SessionOption{WithRestoreRetry(cfg.RestoreMaxAttempts, cfg.RestoreBaseBackoff)}
}

// NewSessionStoreFromEnv builds a Client via NewFromEnv and a SessionStore
// with the restore-retry settings from the environment.
func NewSessionStoreFromEnv(opts ...Option) (*SessionStore, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{WithHTTPTimeout(cfg.HTTPTimeout)}
	if cfg.TokenFile != "" {
		base = append(base, WithTokenStore(tokenstore.NewFileStore(cfg.TokenFile)))
	}
	c, err := New(cfg.BaseURL, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return NewSessionStore(c, cfg.SessionOptions()...), nil
}
