// internal/workers/voice-navigation/execute-navigation/handler_test.go
package executenavigation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navpilot-workers/internal/intent"
)

// ==========================
// Test Logger Implementation
// ==========================

// TestLogger implements the Logger interface for testing
type TestLogger struct {
	t      *testing.T
	fields map[string]interface{}
}

func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{
		t:      t,
		fields: make(map[string]interface{}),
	}
}

func (l *TestLogger) Info(msg string, fields map[string]interface{}) {
	l.t.Logf("INFO: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) Error(msg string, fields map[string]interface{}) {
	l.t.Logf("ERROR: %s %v", msg, l.mergeFields(fields))
}

func (l *TestLogger) With(fields map[string]interface{}) Logger {
	newLogger := &TestLogger{
		t:      l.t,
		fields: make(map[string]interface{}),
	}
	for k, v := range l.fields {
		newLogger.fields[k] = v
	}
	for k, v := range fields {
		newLogger.fields[k] = v
	}
	return newLogger
}

func (l *TestLogger) mergeFields(fields map[string]interface{}) map[string]interface{} {
	allFields := make(map[string]interface{})
	for k, v := range l.fields {
		allFields[k] = v
	}
	for k, v := range fields {
		allFields[k] = v
	}
	return allFields
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		DefaultProvider: "baidu_map",
		DefaultMode:     "transit",
		Timeout:         5 * time.Second,
	}
}

func routeIntent(start, end string) intent.Intent {
	return intent.Intent{
		Type:       intent.TypeRoute,
		Confidence: intent.MatchConfidence,
		Entities:   intent.Entities{Start: start, End: end},
	}
}

// mcpServer answers every tools/call with the given navigation URL.
func mcpServer(t *testing.T, navURL string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tools/call", req["method"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"result": map[string]interface{}{
				"success": true,
				"url":     navURL,
			},
		})
	}))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_FallbackURL(t *testing.T) {
	h := NewHandler(createTestConfig(), NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Intent: routeIntent("北京", "上海")})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, "fallback", output.Path)
	assert.Equal(t, "baidu_map", output.Provider)
	assert.Equal(t, "百度地图", output.ProviderName)
	assert.Contains(t, output.NavigationURL, "api.map.baidu.com/direction")
	assert.Contains(t, output.Message, "北京")
	assert.Contains(t, output.Message, "上海")
}

func TestHandler_Execute_CurrentLocationBecomesProviderOrigin(t *testing.T) {
	h := NewHandler(createTestConfig(), NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Intent: intent.Intent{
			Type:     intent.TypeDestination,
			Entities: intent.Entities{Start: intent.CurrentLocation, End: "天安门"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, output.Message, "我的位置")
}

func TestHandler_Execute_MCPPreferred(t *testing.T) {
	server := mcpServer(t, "https://map.example.com/nav?id=1")
	defer server.Close()

	cfg := createTestConfig()
	cfg.BaiduMCPURL = server.URL
	h := NewHandler(cfg, NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Intent: routeIntent("北京", "上海")})
	require.NoError(t, err)

	assert.Equal(t, "mcp", output.Path)
	assert.Equal(t, "https://map.example.com/nav?id=1", output.NavigationURL)
}

func TestHandler_Execute_MCPFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := createTestConfig()
	cfg.BaiduMCPURL = server.URL
	h := NewHandler(cfg, NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Intent: routeIntent("北京", "上海")})
	require.NoError(t, err)

	assert.Equal(t, "fallback", output.Path)
	assert.Contains(t, output.NavigationURL, "api.map.baidu.com/direction")
}

func TestHandler_Execute_ProviderAndModeOverride(t *testing.T) {
	h := NewHandler(createTestConfig(), NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Intent:   routeIntent("北京", "上海"),
		Provider: "amap",
		Mode:     "driving",
	})
	require.NoError(t, err)

	assert.Equal(t, "amap", output.Provider)
	assert.Equal(t, "高德地图", output.ProviderName)
	assert.Contains(t, output.NavigationURL, "ditu.amap.com/dir")
	assert.Contains(t, output.NavigationURL, "type=car")
}

func TestHandler_Execute_RejectsMissingDestination(t *testing.T) {
	h := NewHandler(createTestConfig(), NewTestLogger(t))

	tests := []struct {
		name string
		in   intent.Intent
	}{
		{
			name: "sentinel destination",
			in: intent.Intent{
				Type:     intent.TypeStart,
				Entities: intent.Entities{Start: "公司", End: intent.NoDestination},
			},
		},
		{
			name: "empty destination",
			in: intent.Intent{
				Type:     intent.TypeDestination,
				Entities: intent.Entities{Start: intent.CurrentLocation},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &Input{Intent: tt.in})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingDestination))
		})
	}
}

func TestHandler_Execute_RejectsUnknownProvider(t *testing.T) {
	h := NewHandler(createTestConfig(), NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{
		Intent:   routeIntent("北京", "上海"),
		Provider: "google_maps",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProvider))
}
