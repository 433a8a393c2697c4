package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "disabled", enabled: false, origins: "http://localhost:5173", wantNil: true},
		{name: "enabled without origins", enabled: true, origins: "", wantNil: true},
		{name: "only separators", enabled: true, origins: " , ,", wantNil: true},
		{name: "enabled with origins", enabled: true, origins: "http://localhost:5173, http://127.0.0.1:5173"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantNil {
				assert.Nil(t, middleware)
				return
			}
			assert.NotNil(t, middleware)
		})
	}
}

func TestParseOrigins(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{
			"trims and skips blanks",
			" http://localhost:5173 ,, http://127.0.0.1:5173/ ",
			[]string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		{
			"drops invalid origins",
			"localhost:5173, ftp://files.local, https://app.local/path, https://app.local",
			[]string{"https://app.local"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOrigins(tt.input, logger)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCORSIntegration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	origin := "http://localhost:5173"

	newRouter := func(enabled bool) *gin.Engine {
		router := gin.New()
		if middleware := createCORSMiddleware(enabled, origin, logger); middleware != nil {
			router.Use(middleware)
		}
		router.PATCH("/v1/records/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		router.GET("/v1/records", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []string{}})
		})
		return router
	}

	t.Run("headers added when enabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/records", nil)
		req.Header.Set("Origin", origin)
		newRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no headers when disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/records", nil)
		req.Header.Set("Origin", origin)
		newRouter(false).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("patch preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/records/abc", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		newRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	})
}
