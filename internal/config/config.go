// Package config provides application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Generation providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// R2Config holds Cloudflare R2 object-storage credentials used for
// resume downloads.
type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Config holds all application configuration.
type Config struct {
	Port string

	Provider       string
	GoogleAPIKey   string
	GeminiModel    string
	AnthropicModel string

	StoreBackend string
	DBURL        string
	SQLitePath   string

	RabbitMQURL   string
	IngestWorkers int

	ApifyToken string
	R2         R2Config
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	workers := getEnvInt("INGEST_WORKERS", 3)
	if workers <= 0 {
		workers = 3
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Provider:       strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		AnthropicModel: getEnv("ANTHROPIC_MODEL", ""),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", StoreSQLite)),
		DBURL:          os.Getenv("DB_URL"),
		SQLitePath:     getEnv("SQLITE_PATH", "./data/checkpoints.db"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		IngestWorkers:  workers,
		ApifyToken:     os.Getenv("APIFY_API_TOKEN"),
		R2: R2Config{
			AccountID: os.Getenv("R2_ACCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	switch c.Provider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("empty GOOGLE_API_KEY in environment")
		}
	case ProviderAnthropic:
		// The Anthropic SDK reads ANTHROPIC_API_KEY itself; fail early
		// so a missing key does not surface mid-turn.
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			return fmt.Errorf("empty ANTHROPIC_API_KEY in environment")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}

	switch c.StoreBackend {
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH cannot be empty")
		}
	case StorePostgres:
		if c.DBURL == "" {
			return fmt.Errorf("empty DB_URL in environment")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	return nil
}

// IngestEnabled reports whether the AMQP ingestion worker pool should run.
func (c *Config) IngestEnabled() bool {
	return c.RabbitMQURL != ""
}

// R2Enabled reports whether resume downloads from object storage are
// configured.
func (c *Config) R2Enabled() bool {
	r := c.R2
	return r.AccountID != "" && r.Bucket != "" && r.AccessKey != "" && r.SecretKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
