package app

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/demands/internal/config"
	recordDomain "github.com/allisson/demands/internal/record/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(config.KeyEnvVar, "")
	return &config.Config{
		DataDir:          filepath.Join(t.TempDir(), "store"),
		DataFileName:     "data.csv",
		KeyFileName:      ".demands.key",
		ExportDelimiter:  ",",
		ServerHost:       "127.0.0.1",
		ServerPort:       8080,
		LogLevel:         "error",
		MetricsNamespace: "demands",
		MetricsPort:      8081,
	}
}

func sampleFields(description string) recordDomain.Fields {
	text := func(s string) *string { return &s }
	return recordDomain.Fields{
		Status:       text("Not started"),
		Priority:     text("High"),
		RegisteredOn: text("2026-01-05"),
		Deadline:     text("2026-02-10"),
		Project:      text("Apollo"),
		Description:  text(description),
		Owner:        text("ana"),
	}
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig(t)

	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainer_Logger(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "debug", level: "debug"},
		{name: "warn", level: "warn"},
		{name: "unknown level falls back to info", level: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := NewContainer(&config.Config{LogLevel: tt.level})

			logger := container.Logger()

			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
		})
	}
}

func TestContainer_BusinessMetrics(t *testing.T) {
	t.Run("no-op when metrics are disabled", func(t *testing.T) {
		container := NewContainer(testConfig(t))

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		bm, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.NotNil(t, bm)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("backed by the provider when metrics are enabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)

		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		require.NotNil(t, provider)

		bm, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.NotNil(t, bm)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.NotNil(t, server)

		require.NoError(t, container.Shutdown(context.Background()))
	})
}

func TestContainer_RecordUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the data directory, key and data file", func(t *testing.T) {
		cfg := testConfig(t)
		container := NewContainer(cfg)

		useCase, err := container.RecordUseCase()
		require.NoError(t, err)
		require.NotNil(t, useCase)

		same, err := container.RecordUseCase()
		require.NoError(t, err)
		assert.Same(t, useCase, same)

		assert.FileExists(t, cfg.DataFilePath())
		info, err := os.Stat(cfg.KeyFilePath())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		data, err := os.ReadFile(cfg.DataFilePath())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "MYDEMANDS_ENC_V1"))

		require.NoError(t, container.Shutdown(ctx))
	})

	t.Run("records survive a new container", func(t *testing.T) {
		cfg := testConfig(t)

		first := NewContainer(cfg)
		useCase, err := first.RecordUseCase()
		require.NoError(t, err)

		id, err := useCase.Add(ctx, sampleFields("write report"))
		require.NoError(t, err)
		require.NoError(t, first.Shutdown(ctx))

		second := NewContainer(cfg)
		reopened, err := second.RecordUseCase()
		require.NoError(t, err)

		got, err := reopened.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "write report", got.Description)
		require.NoError(t, second.Shutdown(ctx))
	})

	t.Run("wrapped with metrics when enabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)

		useCase, err := container.RecordUseCase()
		require.NoError(t, err)
		assert.NotNil(t, useCase)

		require.NoError(t, container.Shutdown(ctx))
	})

	t.Run("invalid key override is cached as an init error", func(t *testing.T) {
		cfg := testConfig(t)
		t.Setenv(config.KeyEnvVar, base64.StdEncoding.EncodeToString([]byte("short")))
		container := NewContainer(cfg)

		_, err := container.RecordUseCase()
		require.Error(t, err)

		_, err = container.RecordUseCase()
		require.Error(t, err)

		_, err = container.HTTPServer()
		require.Error(t, err)
	})
}

func TestContainer_HTTPServer(t *testing.T) {
	cfg := testConfig(t)
	container := NewContainer(cfg)

	server, err := container.HTTPServer()
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.NotNil(t, server.GetHandler())

	same, err := container.HTTPServer()
	require.NoError(t, err)
	assert.Same(t, server, same)

	require.NoError(t, container.dataFileReady(context.Background()))
	require.NoError(t, os.Remove(cfg.DataFilePath()))
	assert.Error(t, container.dataFileReady(context.Background()))
}

func TestContainer_Shutdown(t *testing.T) {
	t.Run("nothing initialized", func(t *testing.T) {
		container := NewContainer(testConfig(t))
		assert.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("drops the cached key", func(t *testing.T) {
		cfg := testConfig(t)
		container := NewContainer(cfg)
		_, err := container.RecordUseCase()
		require.NoError(t, err)

		require.NoError(t, container.Shutdown(context.Background()))

		// The store resolves the key again on next use
		_, err = container.SealedFileStore().Read(context.Background(), cfg.DataFilePath())
		assert.NoError(t, err)
	})
}
