package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Form          FormConfig
	Catalog       CatalogConfig
	NATS          NATSConfig
	RateLimit     RateLimitConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// FormConfig tunes form sessions and uploads
type FormConfig struct {
	SessionTTLMinutes    int
	NotificationMillis   int
	MaxImageBytes        int64
	UploadTimeoutSeconds int
	CookieSecure         bool
}

// CatalogConfig points at an optional JSON catalog replacing the built-in one
type CatalogConfig struct {
	File string
}

// NATSConfig enables listing publication when URL is set
type NATSConfig struct {
	URL        string
	Subject    string
	ClientName string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8081")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:8081")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // OTLP over HTTP, e.g. alloy:4318
	v.SetDefault("O11Y_BE_SERVICE_NAME", "postad-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "postad")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "postad-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Form defaults
	v.SetDefault("FORM_SESSION_TTL_MINUTES", 60)
	v.SetDefault("FORM_NOTIFICATION_MS", 3000)
	v.SetDefault("FORM_MAX_IMAGE_BYTES", 10*1024*1024)
	v.SetDefault("FORM_UPLOAD_TIMEOUT_SECONDS", 10)
	v.SetDefault("FORM_COOKIE_SECURE", true)
	v.SetDefault("CATALOG_FILE", "")

	v.SetDefault("NATS_URL", "")
	v.SetDefault("NATS_SUBJECT", "ads.listing.submitted")
	v.SetDefault("NATS_CLIENT_NAME", "postad-api")

	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Dir:        v.GetString("LOG_DIR"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Form: FormConfig{
			SessionTTLMinutes:    v.GetInt("FORM_SESSION_TTL_MINUTES"),
			NotificationMillis:   v.GetInt("FORM_NOTIFICATION_MS"),
			MaxImageBytes:        v.GetInt64("FORM_MAX_IMAGE_BYTES"),
			UploadTimeoutSeconds: v.GetInt("FORM_UPLOAD_TIMEOUT_SECONDS"),
			CookieSecure:         v.GetBool("FORM_COOKIE_SECURE"),
		},
		Catalog: CatalogConfig{
			File: v.GetString("CATALOG_FILE"),
		},
		NATS: NATSConfig{
			URL:        v.GetString("NATS_URL"),
			Subject:    v.GetString("NATS_SUBJECT"),
			ClientName: v.GetString("NATS_CLIENT_NAME"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks
func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	// Form configuration
	if c.Form.SessionTTLMinutes <= 0 {
		return fmt.Errorf("FORM_SESSION_TTL_MINUTES must be positive")
	}
	if c.Form.NotificationMillis <= 0 {
		return fmt.Errorf("FORM_NOTIFICATION_MS must be positive")
	}
	if c.Form.MaxImageBytes <= 0 {
		return fmt.Errorf("FORM_MAX_IMAGE_BYTES must be positive")
	}
	if c.Form.UploadTimeoutSeconds <= 0 {
		return fmt.Errorf("FORM_UPLOAD_TIMEOUT_SECONDS must be positive")
	}

	if c.NATS.URL != "" && c.NATS.Subject == "" {
		return fmt.Errorf("NATS_SUBJECT is required when NATS_URL is set")
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// SessionTTL is how long an idle form session is kept
func (f FormConfig) SessionTTL() time.Duration {
	return time.Duration(f.SessionTTLMinutes) * time.Minute
}

// NotificationInterval is how long the success notification stays visible
func (f FormConfig) NotificationInterval() time.Duration {
	return time.Duration(f.NotificationMillis) * time.Millisecond
}

// UploadTimeout bounds how long a page submission waits for its uploads
func (f FormConfig) UploadTimeout() time.Duration {
	return time.Duration(f.UploadTimeoutSeconds) * time.Second
}

// MaxBodyBytes fits a page submission carrying every image slot and the
// profile image at the size limit
func (f FormConfig) MaxBodyBytes() int64 {
	return (21 * f.MaxImageBytes) + (1 << 20)
}
