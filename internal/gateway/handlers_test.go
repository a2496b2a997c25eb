// internal/gateway/handlers_test.go
package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"navpilot-workers/internal/common/logger"
	"navpilot-workers/internal/intent"
	"navpilot-workers/pkg/registry"

	en "navpilot-workers/internal/workers/voice-navigation/execute-navigation"
	pni "navpilot-workers/internal/workers/voice-navigation/parse-navigation-intent"
	tvc "navpilot-workers/internal/workers/voice-navigation/transcribe-voice-command"
)

type loggerAdapter struct {
	logger.Logger
}

func (a *loggerAdapter) With(fields map[string]interface{}) pni.Logger {
	return &loggerAdapter{a.Logger.With(fields)}
}

type tvcLoggerAdapter struct {
	logger.Logger
}

func (a *tvcLoggerAdapter) With(fields map[string]interface{}) tvc.Logger {
	return &tvcLoggerAdapter{a.Logger.With(fields)}
}

type enLoggerAdapter struct {
	logger.Logger
}

func (a *enLoggerAdapter) With(fields map[string]interface{}) en.Logger {
	return &enLoggerAdapter{a.Logger.With(fields)}
}

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewZapAdapter(zaptest.NewLogger(t))

	transcriber := tvc.NewHandler(
		&tvc.Config{Enabled: false, Timeout: 5 * time.Second},
		&tvcLoggerAdapter{log},
	)
	intentHandler := pni.NewHandler(
		&pni.Config{Timeout: 5 * time.Second, SessionTTL: time.Minute},
		nil, nil,
		&loggerAdapter{log},
	)
	navigator := en.NewHandler(
		&en.Config{DefaultProvider: "baidu_map", DefaultMode: "transit", Timeout: 5 * time.Second},
		&enLoggerAdapter{log},
	)

	service := NewService(Dependencies{
		Transcriber: transcriber,
		Parser:      intentHandler,
		Navigator:   navigator,
		Logger:      log,
	})
	handler := NewHTTPHandler(service, &registry.ActivityRegistry{
		Version: "test",
		Activities: []registry.Activity{
			{ID: "parse-navigation-intent", TaskType: "parse-navigation-intent", Category: "intent"},
		},
	})

	router := gin.New()
	router.GET("/healthz", handler.Healthz)
	router.GET("/ws", handler.WebSocket)
	api := router.Group("/api")
	{
		api.POST("/navigate", handler.Navigate)
		api.GET("/status", handler.Status)
		api.GET("/activities", handler.Activities)
	}
	return router
}

func postNavigate(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/navigate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestNavigate_RouteCommand(t *testing.T) {
	router := newTestRouter(t)

	w := postNavigate(t, router, map[string]interface{}{"text": "导航从北京到上海"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp NavigateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, intent.TypeRoute, resp.Intent.Type)
	assert.Equal(t, "北京", resp.Intent.Entities.Start)
	assert.Equal(t, "上海", resp.Intent.Entities.End)
	assert.Contains(t, resp.NavigationURL, "api.map.baidu.com/direction")
	assert.Equal(t, "百度地图", resp.ProviderName)
}

func TestNavigate_AudioFallbackText(t *testing.T) {
	router := newTestRouter(t)

	// Speech is disabled in the test config, so the transcriber echoes
	// the fallback text.
	w := postNavigate(t, router, map[string]interface{}{
		"audio": "aGVsbG8=",
		"text":  "去天安门广场",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp NavigateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, intent.TypeDestination, resp.Intent.Type)
	assert.Equal(t, "天安门广场", resp.Intent.Entities.End)
}

func TestNavigate_UnknownCommandNotAnError(t *testing.T) {
	router := newTestRouter(t)

	w := postNavigate(t, router, map[string]interface{}{"text": "今天天气怎么样"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp NavigateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, intent.TypeUnknown, resp.Intent.Type)
	assert.Empty(t, resp.NavigationURL)
	assert.NotEmpty(t, resp.Message)
}

func TestNavigate_StartOnlyCommandHasNoRoute(t *testing.T) {
	router := newTestRouter(t)

	w := postNavigate(t, router, map[string]interface{}{"text": "从公司出发"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp NavigateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// start_navigation carries no destination; the pipeline stops
	// before the map provider.
	assert.Equal(t, intent.TypeStart, resp.Intent.Type)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.NavigationURL)
}

func TestNavigate_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "no text or audio", body: map[string]interface{}{}},
		{name: "unknown field", body: map[string]interface{}{"text": "去机场", "bogus": 1}},
		{name: "bad provider", body: map[string]interface{}{"text": "去机场", "provider": "google_maps"}},
		{name: "wrong type", body: map[string]interface{}{"text": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postNavigate(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestStatus(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "not configured", resp.Components["redis"])
	assert.Equal(t, "ok", resp.Components["maps"])
}

func TestActivities(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/activities", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Version    string              `json:"version"`
		Activities []registry.Activity `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp.Version)
	require.Len(t, resp.Activities, 1)
	assert.Equal(t, "parse-navigation-intent", resp.Activities[0].ID)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebSocket_NavigateAndStatus(t *testing.T) {
	router := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	payload, _ := json.Marshal(map[string]interface{}{"text": "导航从北京到上海"})
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    "navigate",
		"payload": json.RawMessage(payload),
	}))

	var reply struct {
		Type string           `json:"type"`
		Data NavigateResponse `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "result", reply.Type)
	assert.True(t, reply.Data.Success)
	assert.Contains(t, reply.Data.NavigationURL, "api.map.baidu.com")

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "status"}))

	var statusReply struct {
		Type string         `json:"type"`
		Data StatusResponse `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&statusReply))
	assert.Equal(t, "status", statusReply.Type)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "bogus"}))

	var errReply wsReply
	require.NoError(t, conn.ReadJSON(&errReply))
	assert.Equal(t, "error", errReply.Type)
}
