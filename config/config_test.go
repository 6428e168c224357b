package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:             "8080",
		Env:              "development",
		StoreDriver:      DriverSupabase,
		SupabaseURL:      "https://demo.supabase.co",
		SupabaseAnonKey:  "anon",
		IdentityStrategy: "email_slug",
		QueryTimeout:     5 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Supabase with anon key", func(c *Config) {}, false},
		{"Supabase without url", func(c *Config) { c.SupabaseURL = "" }, true},
		{"Supabase without any key", func(c *Config) { c.SupabaseAnonKey = "" }, true},
		{"PostgREST with bare url", func(c *Config) { c.StoreDriver = DriverPostgREST; c.SupabaseURL = ""; c.PostgRESTURL = "http://localhost:3000" }, false},
		{"PostgREST without url", func(c *Config) { c.StoreDriver = DriverPostgREST; c.SupabaseURL = "" }, true},
		{"Postgres without url", func(c *Config) { c.StoreDriver = DriverPostgres }, true},
		{"Postgres with url", func(c *Config) { c.StoreDriver = DriverPostgres; c.DatabaseURL = "postgres://localhost/pmfolio" }, false},
		{"Memory in development", func(c *Config) { c.StoreDriver = DriverMemory }, false},
		{"Memory in production", func(c *Config) { c.StoreDriver = DriverMemory; c.Env = "production" }, true},
		{"Unknown driver", func(c *Config) { c.StoreDriver = "mysql" }, true},
		{"Unknown identity strategy", func(c *Config) { c.IdentityStrategy = "ldap" }, true},
		{"Zero timeout", func(c *Config) { c.QueryTimeout = 0 }, true},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", " Memory ")
	t.Setenv("IDENTITY_STRATEGY", "username")
	t.Setenv("QUERY_TIMEOUT", "750ms")
	t.Setenv("FEATURED_LIMIT", "3")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, c.StoreDriver)
	assert.Equal(t, "username", c.IdentityStrategy)
	assert.Equal(t, 750*time.Millisecond, c.QueryTimeout)
	assert.Equal(t, 3, c.FeaturedLimit)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "example.com", c.UsernameEmailDomain)
}

func TestLoadConfig_NormalizesIdentityStrategy(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("IDENTITY_STRATEGY", " ID ")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "id", c.IdentityStrategy)
}

func TestSupabaseKeyPrefersServiceKey(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "anon", c.SupabaseKey())
	c.SupabaseServiceKey = "service"
	assert.Equal(t, "service", c.SupabaseKey())
}

func TestNewRESTClient(t *testing.T) {
	c := validConfig()
	c.StoreDriver = DriverPostgREST
	client, err := NewRESTClient(c, NewLogger("panic"))
	require.NoError(t, err)
	require.NotNil(t, client)

	transport, ok := client.Transport.Parent.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, c.QueryTimeout, transport.ResponseHeaderTimeout)
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("chatty").GetLevel())
}
