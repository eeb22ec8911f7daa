package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HTTPPort != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.HTTPPort)
	}
	if cfg.AIProvider != "dummy" {
		t.Errorf("expected default provider dummy, got %q", cfg.AIProvider)
	}
	if cfg.ClientType != "local" {
		t.Errorf("expected default client type local, got %q", cfg.ClientType)
	}
	if cfg.DatabaseURL != filepath.Join(cfg.DataDir, "opsverdict.db") {
		t.Errorf("expected database under data dir, got %q", cfg.DatabaseURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("OPSVERDICT_DATA_DIR", "/tmp/opsverdict-test")
	t.Setenv("OPSVERDICT_AI_PROVIDER", "OpenAI")
	t.Setenv("OPSVERDICT_CLIENT_TYPE", "HTTP")
	t.Setenv("OPSVERDICT_API_KEYS", "alpha, beta,, ")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.HTTPPort != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.HTTPPort)
	}
	if cfg.DataDir != "/tmp/opsverdict-test" {
		t.Errorf("unexpected data dir: %q", cfg.DataDir)
	}
	if cfg.AIProvider != "openai" {
		t.Errorf("provider not lowercased: %q", cfg.AIProvider)
	}
	if cfg.ClientType != "http" {
		t.Errorf("client type not lowercased: %q", cfg.ClientType)
	}
	if len(cfg.APIKeys) != 2 || cfg.APIKeys[0] != "alpha" || cfg.APIKeys[1] != "beta" {
		t.Errorf("unexpected api keys: %v", cfg.APIKeys)
	}
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPPort != 8000 {
		t.Errorf("expected fallback port 8000, got %d", cfg.HTTPPort)
	}
}
