package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// placeholder secrets that must not reach production
var placeholders = []string{
	"YOUR_SECRET_HERE",
	"changeme",
	"CHANGEME",
	"",
}

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load()
	})
	return initErr
}

func load() error {
	setDefaults()

	// Environment variables override the file
	viper.SetEnvPrefix("KILLALL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath := filepath.Clean("./config/settings.yaml")
	viper.SetConfigFile(configPath)

	if err := viper.ReadInConfig(); err != nil {
		// A missing file means defaults and env vars only
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// Validate checks the configuration and fills in safe values where a
// setting is out of range
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Path == "" {
		fmt.Println("Warning: No database path configured")
	}

	for _, placeholder := range placeholders {
		if c.Auth.JWTSecret == placeholder {
			if c.IsProduction() {
				return fmt.Errorf("invalid JWT secret: cannot use placeholder values in production")
			}
			fmt.Println("Warning: JWT secret is using a placeholder value - this is insecure!")
			break
		}
	}

	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Cleanup.Retention < 0 {
		return fmt.Errorf("invalid cleanup retention: %s", c.Cleanup.Retention)
	}
	if c.Cleanup.Interval <= 0 {
		c.Cleanup.Interval = time.Hour
	}
	if c.RateLimiting.RPS <= 0 {
		c.RateLimiting.RPS = 10
	}
	if c.RateLimiting.Burst <= 0 {
		c.RateLimiting.Burst = 20
	}
	if c.Annotation.DraftLength <= 0 {
		return fmt.Errorf("invalid annotation draft length: %v", c.Annotation.DraftLength)
	}
	if c.Annotation.MarkerLength <= 0 {
		return fmt.Errorf("invalid annotation marker length: %v", c.Annotation.MarkerLength)
	}
	if c.Annotation.DebounceDelay < 0 {
		return fmt.Errorf("invalid annotation debounce delay: %s", c.Annotation.DebounceDelay)
	}
	if c.Client.RetryAttempts < 0 {
		c.Client.RetryAttempts = 0
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/comments.db")
	viper.SetDefault("database.verbose", false)

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "changeme")
	viper.SetDefault("auth.token_ttl", 24*time.Hour)
	viper.SetDefault("auth.issuer", "waveform-comments")

	// Cache defaults
	viper.SetDefault("cache.comments_ttl", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)

	// Cleanup defaults
	viper.SetDefault("cleanup.enabled", true)
	viper.SetDefault("cleanup.retention", 30*24*time.Hour)
	viper.SetDefault("cleanup.interval", time.Hour)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.rps", 10)
	viper.SetDefault("rate_limiting.burst", 20)

	// Client defaults
	viper.SetDefault("client.base_url", "http://localhost:8080")
	viper.SetDefault("client.timeout", 10*time.Second)
	viper.SetDefault("client.retry_attempts", 3)
	viper.SetDefault("client.retry_initial_interval", 200*time.Millisecond)
	viper.SetDefault("client.retry_max_interval", 2*time.Second)

	// Annotation defaults
	viper.SetDefault("annotation.debounce_delay", 300*time.Millisecond)
	viper.SetDefault("annotation.draft_length", 1.0)
	viper.SetDefault("annotation.marker_length", 0.5)
	viper.SetDefault("annotation.surface_width", 1000.0)
	viper.SetDefault("annotation.default_color", "rgba(255, 0, 0, 0.5)")
	viper.SetDefault("annotation.selected_color", "rgba(0, 255, 0, 0.7)")
	viper.SetDefault("annotation.draft_color", "rgba(255, 165, 0, 0.5)")

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
}
