// Package config loads service configuration and builds the shared clients
// (logger, Supabase, Postgres) from it.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverSupabase  = "supabase"
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

// Config holds values loaded from config.yml, .env and the environment.
type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	StoreDriver        string `mapstructure:"STORE_DRIVER"`
	SupabaseURL        string `mapstructure:"SUPABASE_URL"`
	SupabaseServiceKey string `mapstructure:"SUPABASE_SERVICE_KEY"`
	SupabaseAnonKey    string `mapstructure:"SUPABASE_ANON_KEY"`
	PostgRESTURL       string `mapstructure:"POSTGREST_URL"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`

	IdentityStrategy    string        `mapstructure:"IDENTITY_STRATEGY"`
	UsernameEmailDomain string        `mapstructure:"USERNAME_EMAIL_DOMAIN"`
	QueryTimeout        time.Duration `mapstructure:"QUERY_TIMEOUT"`
	FeaturedLimit       int           `mapstructure:"FEATURED_LIMIT"`

	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	SentryDSN      string `mapstructure:"SENTRY_DSN"`
}

// LoadConfig reads .env (if present), then config.yml (if present), then the environment.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverSupabase)
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_SERVICE_KEY", "")
	v.SetDefault("SUPABASE_ANON_KEY", "")
	v.SetDefault("POSTGREST_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("IDENTITY_STRATEGY", "email_slug")
	v.SetDefault("USERNAME_EMAIL_DOMAIN", "example.com")
	v.SetDefault("QUERY_TIMEOUT", "5s")
	v.SetDefault("FEATURED_LIMIT", 6)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("SENTRY_DSN", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.StoreDriver = strings.ToLower(strings.TrimSpace(config.StoreDriver))
	config.IdentityStrategy = strings.ToLower(strings.TrimSpace(config.IdentityStrategy))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Validate checks that the selected store driver has what it needs.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.StoreDriver {
	case DriverSupabase:
		if c.SupabaseURL == "" {
			return errors.New("SUPABASE_URL is required for the supabase driver")
		}
		if c.SupabaseKey() == "" {
			return errors.New("SUPABASE_SERVICE_KEY or SUPABASE_ANON_KEY is required for the supabase driver")
		}
	case DriverPostgREST:
		if c.PostgRESTURL == "" && c.SupabaseURL == "" {
			return errors.New("POSTGREST_URL or SUPABASE_URL is required for the postgrest driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
		if c.IsProduction() {
			return errors.New("the memory driver cannot be used in production")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.IdentityStrategy {
	case "id", "email_slug", "username":
	default:
		return fmt.Errorf("unknown IDENTITY_STRATEGY %q", c.IdentityStrategy)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("QUERY_TIMEOUT must be positive")
	}
	return nil
}

// SupabaseKey prefers the service key and falls back to the anon key.
func (c *Config) SupabaseKey() string {
	if c.SupabaseServiceKey != "" {
		return c.SupabaseServiceKey
	}
	return c.SupabaseAnonKey
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
