package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Port:         "8080",
		Provider:     ProviderGemini,
		GoogleAPIKey: "key",
		StoreBackend: StoreSQLite,
		SQLitePath:   "./data/checkpoints.db",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("Expected default provider gemini, got %q", cfg.Provider)
	}
	if cfg.StoreBackend != StoreSQLite {
		t.Errorf("Expected default store sqlite, got %q", cfg.StoreBackend)
	}
	if cfg.IngestWorkers != 3 {
		t.Errorf("Expected default worker count 3, got %d", cfg.IngestWorkers)
	}
	if cfg.IngestEnabled() {
		t.Error("Ingestion should be disabled without RABBITMQ_URL")
	}
	if cfg.R2Enabled() {
		t.Error("R2 should be disabled without credentials")
	}
}

func TestLoadRejectsMissingGeminiKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for missing GOOGLE_API_KEY")
	}
}

func TestLoadAnthropicProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("Expected anthropic provider, got %q", cfg.Provider)
	}
}

func TestLoadIgnoresInvalidWorkerCount(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("INGEST_WORKERS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.IngestWorkers != 3 {
		t.Errorf("Expected fallback worker count 3, got %d", cfg.IngestWorkers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"memory store", func(c *Config) { c.StoreBackend = StoreMemory }, ""},
		{"empty port", func(c *Config) { c.Port = "" }, "PORT"},
		{"unknown provider", func(c *Config) { c.Provider = "openai" }, "LLM_PROVIDER"},
		{"missing gemini key", func(c *Config) { c.GoogleAPIKey = "" }, "GOOGLE_API_KEY"},
		{"unknown store", func(c *Config) { c.StoreBackend = "redis" }, "STORE_BACKEND"},
		{"postgres without url", func(c *Config) { c.StoreBackend = StorePostgres }, "DB_URL"},
		{"sqlite without path", func(c *Config) { c.SQLitePath = "" }, "SQLITE_PATH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestR2Enabled(t *testing.T) {
	cfg := validConfig()
	cfg.R2 = R2Config{AccountID: "acc", Bucket: "resumes", AccessKey: "ak", SecretKey: "sk"}
	if !cfg.R2Enabled() {
		t.Error("Expected R2 enabled with full credentials")
	}
	cfg.R2.SecretKey = ""
	if cfg.R2Enabled() {
		t.Error("Expected R2 disabled with partial credentials")
	}
}
