package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Auth         AuthConfig       `mapstructure:"auth"`
	Cache        CacheConfig      `mapstructure:"cache"`
	Cleanup      CleanupConfig    `mapstructure:"cleanup"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Client       ClientConfig     `mapstructure:"client"`
	Annotation   AnnotationConfig `mapstructure:"annotation"`
	Security     SecurityConfig   `mapstructure:"security"`
	Logging      LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// AuthConfig contains bearer token settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	Issuer    string        `mapstructure:"issuer"`
}

// CacheConfig contains the comment list cache settings
type CacheConfig struct {
	CommentsTTL     time.Duration `mapstructure:"comments_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CleanupConfig controls purging of deleted comments
type CleanupConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Retention time.Duration `mapstructure:"retention"`
	Interval  time.Duration `mapstructure:"interval"`
}

// RateLimitConfig contains per-client rate limiting settings
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

// ClientConfig contains settings for the API client used by the CLI
type ClientConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	RetryAttempts        int           `mapstructure:"retry_attempts"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	RetryMaxInterval     time.Duration `mapstructure:"retry_max_interval"`
}

// AnnotationConfig contains waveform annotation settings
type AnnotationConfig struct {
	DebounceDelay time.Duration `mapstructure:"debounce_delay"`
	DraftLength   float64       `mapstructure:"draft_length"`
	MarkerLength  float64       `mapstructure:"marker_length"`
	SurfaceWidth  float64       `mapstructure:"surface_width"`
	DefaultColor  string        `mapstructure:"default_color"`
	SelectedColor string        `mapstructure:"selected_color"`
	DraftColor    string        `mapstructure:"draft_color"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
