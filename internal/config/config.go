// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	customValidation "github.com/allisson/demands/internal/validation"
)

// KeyEnvVar is the environment variable holding the base64 key override.
// It is read by the key manager directly so the key never lives in Config.
const KeyEnvVar = "DEMANDS_APP_KEY"

// Config holds all application configuration.
type Config struct {
	// DataDir is the directory holding the data file and the key file.
	DataDir string
	// DataFileName is the name of the encrypted data file inside DataDir.
	DataFileName string
	// KeyFileName is the name of the key file inside DataDir.
	KeyFileName string

	// ExportDelimiter is the field delimiter used by plaintext bulk export/import.
	ExportDelimiter string

	// ServerHost is the host address the local API server will bind to.
	ServerHost string
	// ServerPort is the port number the local API server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// CORSEnabled enables CORS headers for browser front-ends served from another origin.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins.
	CORSAllowOrigins string

	// RateLimitEnabled enables request rate limiting on the record endpoints.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the sustained request rate allowed on the record endpoints.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst capacity of the record endpoints.
	RateLimitBurst int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Storage
		DataDir:      env.GetString("DATA_DIR", "."),
		DataFileName: env.GetString("DATA_FILE_NAME", "data.csv"),
		KeyFileName:  env.GetString("KEY_FILE_NAME", ".demands.key"),

		// Bulk export/import
		ExportDelimiter: env.GetString("EXPORT_DELIMITER", ","),

		// Local API server
		ServerHost:      env.GetString("SERVER_HOST", "127.0.0.1"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Rate limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 20.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 40),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "demands"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the configuration values that cannot be defaulted safely.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.DataDir, validation.Required, customValidation.NoWhitespace),
		validation.Field(&c.DataFileName, validation.Required, customValidation.NoWhitespace),
		validation.Field(&c.KeyFileName, validation.Required, customValidation.NoWhitespace),
		validation.Field(&c.ExportDelimiter, validation.Required, customValidation.SingleRune),
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort, validation.When(c.MetricsEnabled,
			validation.Required, validation.Min(1), validation.Max(65535),
			validation.NotIn(c.ServerPort).Error("must differ from the server port"),
		)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.RateLimitRequestsPerSec, validation.When(c.RateLimitEnabled, validation.Required, validation.Min(0.1))),
		validation.Field(&c.RateLimitBurst, validation.When(c.RateLimitEnabled, validation.Required, validation.Min(1))),
	)
	return customValidation.WrapValidationError(err)
}

// DataFilePath returns the full path of the encrypted data file.
func (c *Config) DataFilePath() string {
	return filepath.Join(c.DataDir, c.DataFileName)
}

// KeyFilePath returns the full path of the key file, which lives beside the data file.
func (c *Config) KeyFilePath() string {
	return filepath.Join(c.DataDir, c.KeyFileName)
}

// Delimiter returns the export delimiter as a rune, defaulting to ',' when unset.
func (c *Config) Delimiter() rune {
	for _, r := range c.ExportDelimiter {
		return r
	}
	return ','
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
