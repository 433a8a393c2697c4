package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/demands/internal/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ".", cfg.DataDir)
				assert.Equal(t, "data.csv", cfg.DataFileName)
				assert.Equal(t, ".demands.key", cfg.KeyFileName)
				assert.Equal(t, ",", cfg.ExportDelimiter)
				assert.Equal(t, "127.0.0.1", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.False(t, cfg.MetricsEnabled)
				assert.Equal(t, "demands", cfg.MetricsNamespace)
				assert.Equal(t, 8081, cfg.MetricsPort)
				assert.False(t, cfg.CORSEnabled)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 20.0, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 40, cfg.RateLimitBurst)
				assert.NoError(t, cfg.Validate())
			},
		},
		{
			name: "load custom cors and rate limit configuration",
			envVars: map[string]string{
				"CORS_ENABLED":                "true",
				"CORS_ALLOW_ORIGINS":          "http://localhost:5173",
				"RATE_LIMIT_ENABLED":          "false",
				"RATE_LIMIT_REQUESTS_PER_SEC": "2.5",
				"RATE_LIMIT_BURST":            "5",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.CORSEnabled)
				assert.Equal(t, "http://localhost:5173", cfg.CORSAllowOrigins)
				assert.False(t, cfg.RateLimitEnabled)
				assert.Equal(t, 2.5, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 5, cfg.RateLimitBurst)
			},
		},
		{
			name: "load custom storage configuration",
			envVars: map[string]string{
				"DATA_DIR":       "/var/lib/demands",
				"DATA_FILE_NAME": "items.csv",
				"KEY_FILE_NAME":  "items.key",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, filepath.Join("/var/lib/demands", "items.csv"), cfg.DataFilePath())
				assert.Equal(t, filepath.Join("/var/lib/demands", "items.key"), cfg.KeyFilePath())
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST":              "localhost",
				"SERVER_PORT":              "9090",
				"SHUTDOWN_TIMEOUT_SECONDS": "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
				assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
			},
		},
		{
			name: "load custom metrics configuration",
			envVars: map[string]string{
				"METRICS_ENABLED":   "true",
				"METRICS_NAMESPACE": "tracker",
				"METRICS_PORT":      "9191",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "tracker", cfg.MetricsNamespace)
				assert.Equal(t, 9191, cfg.MetricsPort)
			},
		},
		{
			name: "load custom export delimiter",
			envVars: map[string]string{
				"EXPORT_DELIMITER": ";",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ';', cfg.Delimiter())
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "debug", cfg.GetGinMode())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			cfg := Load()

			tt.validate(t, cfg)
		})
	}
}

func TestDelimiter_EmptyFallsBackToComma(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, ',', cfg.Delimiter())
}

func TestGetGinMode(t *testing.T) {
	for _, level := range []string{"info", "warn", "error", "unknown"} {
		cfg := &Config{LogLevel: level}
		assert.Equal(t, "release", cfg.GetGinMode(), level)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataDir:                 ".",
			DataFileName:            "data.csv",
			KeyFileName:             ".demands.key",
			ExportDelimiter:         ",",
			ServerPort:              8080,
			LogLevel:                "info",
			MetricsEnabled:          true,
			MetricsPort:             8081,
			RateLimitEnabled:        true,
			RateLimitRequestsPerSec: 10,
			RateLimitBurst:          20,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "DataDir"},
		{name: "padded file name", mutate: func(c *Config) { c.DataFileName = " data.csv" }, wantErr: "DataFileName"},
		{name: "multi character delimiter", mutate: func(c *Config) { c.ExportDelimiter = ";;" }, wantErr: "ExportDelimiter"},
		{name: "port out of range", mutate: func(c *Config) { c.ServerPort = 70000 }, wantErr: "ServerPort"},
		{name: "metrics on server port", mutate: func(c *Config) { c.MetricsPort = 8080 }, wantErr: "MetricsPort"},
		{
			name: "metrics port ignored when disabled",
			mutate: func(c *Config) {
				c.MetricsEnabled = false
				c.MetricsPort = 8080
			},
		},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "LogLevel"},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimitBurst = 0 }, wantErr: "RateLimitBurst"},
		{
			name: "rate limit values ignored when disabled",
			mutate: func(c *Config) {
				c.RateLimitEnabled = false
				c.RateLimitBurst = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
