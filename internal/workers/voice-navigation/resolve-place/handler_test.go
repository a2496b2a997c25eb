// internal/workers/voice-navigation/resolve-place/handler_test.go
package resolveplace

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
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
		Index:   "poi_places",
		Timeout: 5 * time.Second,
	}
}

// fakeCluster answers search requests with a canned address per query
// string. Unknown queries return zero hits.
func fakeCluster(t *testing.T, addresses map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		hits := []map[string]interface{}{}
		for query, address := range addresses {
			if strings.Contains(string(body), query) {
				hits = append(hits, map[string]interface{}{
					"_source": map[string]interface{}{
						"name":    query,
						"address": address,
					},
				})
				break
			}
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{
				"hits": hits,
			},
		})
	}))
}

func clusterClient(t *testing.T, url string) *elasticsearch.Client {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	require.NoError(t, err)
	return client
}

func routeIntent(start, end string) intent.Intent {
	return intent.Intent{
		Type:       intent.TypeRoute,
		Confidence: intent.MatchConfidence,
		Entities:   intent.Entities{Start: start, End: end},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ResolvesBothFields(t *testing.T) {
	server := fakeCluster(t, map[string]string{
		"天安门": "北京市东城区东长安街天安门广场",
		"虹桥站": "上海市闵行区申虹路虹桥火车站",
	})
	defer server.Close()

	h := NewHandler(createTestConfig(), clusterClient(t, server.URL), NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Intent: routeIntent("天安门", "虹桥站")})
	require.NoError(t, err)

	assert.Equal(t, "北京市东城区东长安街天安门广场", output.Intent.Entities.Start)
	assert.Equal(t, "上海市闵行区申虹路虹桥火车站", output.Intent.Entities.End)
	assert.True(t, output.ResolvedStart)
	assert.True(t, output.ResolvedEnd)
}

func TestHandler_Execute_MissPassesThrough(t *testing.T) {
	server := fakeCluster(t, map[string]string{})
	defer server.Close()

	h := NewHandler(createTestConfig(), clusterClient(t, server.URL), NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Intent: routeIntent("不存在的地方", "另一个地方")})
	require.NoError(t, err)

	assert.Equal(t, "不存在的地方", output.Intent.Entities.Start)
	assert.Equal(t, "另一个地方", output.Intent.Entities.End)
	assert.False(t, output.ResolvedStart)
	assert.False(t, output.ResolvedEnd)
}

func TestHandler_Execute_SkipsSentinelFields(t *testing.T) {
	queried := []string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		body, _ := io.ReadAll(r.Body)
		queried = append(queried, string(body))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{"hits": []interface{}{}},
		})
	}))
	defer server.Close()

	h := NewHandler(createTestConfig(), clusterClient(t, server.URL), NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{
		Intent: intent.Intent{
			Type:     intent.TypeDestination,
			Entities: intent.Entities{Start: intent.CurrentLocation, End: "天安门"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, intent.CurrentLocation, output.Intent.Entities.Start)
	require.Len(t, queried, 1)
	assert.Contains(t, queried[0], "天安门")
}

func TestHandler_Execute_ClusterErrorDegradesToPassThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	h := NewHandler(createTestConfig(), clusterClient(t, server.URL), NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Intent: routeIntent("天安门", "虹桥站")})
	require.NoError(t, err)
	assert.Equal(t, "天安门", output.Intent.Entities.Start)
	assert.False(t, output.ResolvedStart)
}

func TestHandler_Execute_TransportFailure(t *testing.T) {
	server := fakeCluster(t, map[string]string{})
	server.Close() // connection refused

	h := NewHandler(createTestConfig(), clusterClient(t, server.URL), NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{Intent: routeIntent("天安门", "虹桥站")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlaceLookupFailed))
}

func TestHandler_Execute_NilClientPassesThrough(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{Intent: routeIntent("天安门", "虹桥站")})
	require.NoError(t, err)
	assert.Equal(t, "天安门", output.Intent.Entities.Start)
	assert.False(t, output.ResolvedStart)
	assert.False(t, output.ResolvedEnd)
}
