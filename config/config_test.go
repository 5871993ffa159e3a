package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: true,
		},
		{
			name: "debug gin mode",
			config: &Config{
				Server: ServerConfig{GinMode: "debug"},
			},
			expected: true,
		},
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production"},
			},
			expected: false,
		},
		{
			name: "release mode",
			config: &Config{
				Server: ServerConfig{GinMode: "release", AppEnv: "production"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.IsDevelopment()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production"},
			},
			expected: true,
		},
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: false,
		},
		{
			name: "staging environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "staging"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.IsProduction()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8081",
			BaseURL:        "http://localhost:8081",
			AllowedOrigins: []string{"http://localhost:8081"},
		},
		Form: FormConfig{
			SessionTTLMinutes:    60,
			NotificationMillis:   3000,
			MaxImageBytes:        1024,
			UploadTimeoutSeconds: 10,
		},
		RateLimit: RateLimitConfig{RequestsPerSecond: 10, Burst: 40},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:     "missing port",
			mutate:   func(c *Config) { c.Server.Port = "" },
			errorMsg: "PORT is required",
		},
		{
			name:     "missing origins",
			mutate:   func(c *Config) { c.Server.AllowedOrigins = nil },
			errorMsg: "ALLOWED_CORS_ORIGINS is required",
		},
		{
			name:     "zero session ttl",
			mutate:   func(c *Config) { c.Form.SessionTTLMinutes = 0 },
			errorMsg: "FORM_SESSION_TTL_MINUTES must be positive",
		},
		{
			name:     "negative notification interval",
			mutate:   func(c *Config) { c.Form.NotificationMillis = -1 },
			errorMsg: "FORM_NOTIFICATION_MS must be positive",
		},
		{
			name:     "zero image limit",
			mutate:   func(c *Config) { c.Form.MaxImageBytes = 0 },
			errorMsg: "FORM_MAX_IMAGE_BYTES must be positive",
		},
		{
			name: "nats without subject",
			mutate: func(c *Config) {
				c.NATS.URL = "nats://localhost:4222"
			},
			errorMsg: "NATS_SUBJECT is required when NATS_URL is set",
		},
		{
			name: "profiling without endpoint",
			mutate: func(c *Config) {
				c.Profiling.Enabled = true
			},
			errorMsg: "O11Y_PROFILING_ENDPOINT is required when profiling is enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errorMsg, err.Error())
		})
	}
}

func TestFormConfig_Durations(t *testing.T) {
	f := FormConfig{SessionTTLMinutes: 30, NotificationMillis: 3000, UploadTimeoutSeconds: 5, MaxImageBytes: 1 << 20}

	assert.Equal(t, 30*time.Minute, f.SessionTTL())
	assert.Equal(t, 3*time.Second, f.NotificationInterval())
	assert.Equal(t, 5*time.Second, f.UploadTimeout())
	assert.Equal(t, int64(22<<20), f.MaxBodyBytes())
}

func TestLoad_WithDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "postad-api", cfg.Observability.ServiceName)
	assert.Equal(t, 60, cfg.Form.SessionTTLMinutes)
	assert.Equal(t, 3000, cfg.Form.NotificationMillis)
	assert.Equal(t, int64(10*1024*1024), cfg.Form.MaxImageBytes)
	assert.True(t, cfg.Form.CookieSecure)
	assert.Equal(t, "ads.listing.submitted", cfg.NATS.Subject)
	assert.Empty(t, cfg.NATS.URL)
	assert.Empty(t, cfg.Catalog.File)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "development")
	t.Setenv("ALLOWED_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("FORM_NOTIFICATION_MS", "1500")
	t.Setenv("FORM_COOKIE_SECURE", "false")
	t.Setenv("NATS_URL", "nats://nats:4222")
	t.Setenv("CATALOG_FILE", "/etc/postad/catalog.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 1500*time.Millisecond, cfg.Form.NotificationInterval())
	assert.False(t, cfg.Form.CookieSecure)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Equal(t, "/etc/postad/catalog.json", cfg.Catalog.File)
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv("FORM_SESSION_TTL_MINUTES", "0")

	_, err := Load()

	assert.EqualError(t, err, "FORM_SESSION_TTL_MINUTES must be positive")
}
