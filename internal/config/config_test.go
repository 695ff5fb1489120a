package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CommerceBaseURL != "https://commerce.procure.example.com" {
		t.Errorf("CommerceBaseURL = %s, want default", cfg.CommerceBaseURL)
	}
	if cfg.IsolatedMock {
		t.Error("IsolatedMock should default to false")
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROCURE_COMMERCE_BASE_URL", "http://localhost:9000/")
	t.Setenv("PROCURE_ISOLATED_MOCK", "true")
	t.Setenv("PROCURE_GATEWAY_DEV_TOKEN", "dev-token-1")
	t.Setenv("PROCURE_REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CommerceBaseURL != "http://localhost:9000" {
		t.Errorf("CommerceBaseURL = %s, want trailing slash trimmed", cfg.CommerceBaseURL)
	}
	if !cfg.IsolatedMock {
		t.Error("IsolatedMock = false, want true")
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.DevToken() != "dev-token-1" {
		t.Errorf("DevToken() = %s, want dev-token-1", cfg.DevToken())
	}
}

func TestDevToken_Order(t *testing.T) {
	cfg := Config{CommerceDevToken: "commerce", IdentityDevToken: "identity"}
	if got := cfg.DevToken(); got != "commerce" {
		t.Errorf("DevToken() = %s, want commerce", got)
	}
	if got := (Config{}).DevToken(); got != "" {
		t.Errorf("DevToken() on empty config = %s, want empty", got)
	}
}
