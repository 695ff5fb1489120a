// Package config holds the runtime configuration for the procurement client.
// A Config value is constructed once at startup and passed by injection into
// every facade and the requester; nothing in this module reads configuration
// through globals.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/ProcureNet/client_runtime/internal/platform"
)

// Config selects backends, development credentials and the isolated mock
// switch for one runtime instance.
type Config struct {
	// Base URLs per backend. Facade paths are joined onto these.
	GatewayBaseURL  string `env:"PROCURE_GATEWAY_BASE_URL,default=https://gateway.procure.example.com"`
	CommerceBaseURL string `env:"PROCURE_COMMERCE_BASE_URL,default=https://commerce.procure.example.com"`
	IdentityBaseURL string `env:"PROCURE_IDENTITY_BASE_URL,default=https://identity.procure.example.com"`

	// Development bearer tokens per backend. Used as the token store's
	// last-resort fallback; never persisted.
	GatewayDevToken  string `env:"PROCURE_GATEWAY_DEV_TOKEN,default="`
	CommerceDevToken string `env:"PROCURE_COMMERCE_DEV_TOKEN,default="`
	IdentityDevToken string `env:"PROCURE_IDENTITY_DEV_TOKEN,default="`

	// IsolatedMock switches every facade onto the persisted local state
	// machine instead of network calls.
	IsolatedMock bool `env:"PROCURE_ISOLATED_MOCK,default=false"`

	// StateDir is where the file-backed store lives. Empty means keep state
	// in memory only.
	StateDir string `env:"PROCURE_STATE_DIR,default="`

	// RequestTimeout is the per-request timeout hint passed to the transport
	// adapter.
	RequestTimeout time.Duration `env:"PROCURE_REQUEST_TIMEOUT,default=30s"`

	// Platform is the host capability value. Embedding hosts set it
	// directly; Load falls back to platform.Detect for processes configured
	// purely through the environment.
	Platform platform.Platform
}

// Load reads an optional .env file and decodes the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	cfg.GatewayBaseURL = strings.TrimRight(cfg.GatewayBaseURL, "/")
	cfg.CommerceBaseURL = strings.TrimRight(cfg.CommerceBaseURL, "/")
	cfg.IdentityBaseURL = strings.TrimRight(cfg.IdentityBaseURL, "/")
	cfg.Platform = platform.Detect()
	return cfg, nil
}

// DevToken returns the first configured development token, preferring the
// gateway's. The token store treats it as the final fallback for every
// backend; per-backend wiring can pick a specific one instead.
func (c Config) DevToken() string {
	for _, t := range []string{c.GatewayDevToken, c.CommerceDevToken, c.IdentityDevToken} {
		if t != "" {
			return t
		}
	}
	return ""
}
