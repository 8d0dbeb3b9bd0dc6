package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup. Values come from the
// environment (VAULTKEEP_ prefix) or an optional .env file; see cmd/root.go
// for the viper wiring.
type Config struct {
	Addr string

	// Token signing.
	SecretKey string
	Algorithm string
	TokenTTL  time.Duration

	// Document store.
	MongoURI      string
	MongoDatabase string

	// Counter store. Empty RedisAddr selects the in-memory counter store,
	// which is only suitable for a single-process deployment.
	RedisAddr     string
	RedisPassword string

	// Rate limiting.
	RateLimitWrite  int
	RateLimitRead   int
	RateLimitWindow time.Duration

	// StoreTimeout bounds every counter-store and document-store round trip.
	StoreTimeout time.Duration

	Audit AuditConfig
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool
	Type    string // e.g. "file", "memory"
	Path    string
}

// FromEnv assembles a Config from viper-bound environment values.
func FromEnv() (*Config, error) {
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("algorithm", "HS256")
	viper.SetDefault("access_token_expire_minutes", 30)
	viper.SetDefault("mongo_db_name", "user_management_db")
	viper.SetDefault("rate_limit_write", 10)
	viper.SetDefault("rate_limit_read", 60)
	viper.SetDefault("rate_limit_window_seconds", 60)
	viper.SetDefault("store_timeout_seconds", 5)
	viper.SetDefault("audit_type", "file")
	viper.SetDefault("audit_path", "vaultkeep-audit.jsonl")

	cfg := &Config{
		Addr:            viper.GetString("addr"),
		SecretKey:       viper.GetString("secret_key"),
		Algorithm:       viper.GetString("algorithm"),
		TokenTTL:        time.Duration(viper.GetInt("access_token_expire_minutes")) * time.Minute,
		MongoURI:        viper.GetString("mongo_uri"),
		MongoDatabase:   viper.GetString("mongo_db_name"),
		RedisAddr:       viper.GetString("redis_addr"),
		RedisPassword:   viper.GetString("redis_password"),
		RateLimitWrite:  viper.GetInt("rate_limit_write"),
		RateLimitRead:   viper.GetInt("rate_limit_read"),
		RateLimitWindow: time.Duration(viper.GetInt("rate_limit_window_seconds")) * time.Second,
		StoreTimeout:    time.Duration(viper.GetInt("store_timeout_seconds")) * time.Second,
		Audit: AuditConfig{
			Enabled: viper.GetBool("audit_enabled"),
			Type:    viper.GetString("audit_type"),
			Path:    viper.GetString("audit_path"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the server must not start with.
// A missing signing secret is fatal here, not a per-request failure.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("secret_key is required")
	}
	switch strings.ToUpper(c.Algorithm) {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported signing algorithm %q", c.Algorithm)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("access_token_expire_minutes must be positive")
	}
	if c.RateLimitWrite <= 0 || c.RateLimitRead <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate_limit_window_seconds must be positive")
	}
	return nil
}
