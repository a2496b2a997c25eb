// internal/workers/voice-navigation/parse-navigation-intent/handler_test.go
package parsenavigationintent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
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
		Timeout:    5 * time.Second,
		MaxRetries: 1,
		SessionTTL: 30 * time.Minute,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_CommandScenarios(t *testing.T) {
	tests := []struct {
		name          string
		command       string
		expectedType  intent.Type
		expectedStart string
		expectedEnd   string
		expectedValid bool
	}{
		{
			name:          "full route command",
			command:       "导航从北京到上海",
			expectedType:  intent.TypeRoute,
			expectedStart: "北京",
			expectedEnd:   "上海",
			expectedValid: true,
		},
		{
			name:          "destination only command",
			command:       "去天安门广场",
			expectedType:  intent.TypeDestination,
			expectedStart: intent.CurrentLocation,
			expectedEnd:   "天安门广场",
			expectedValid: true,
		},
		{
			name:          "polite start command",
			command:       "请帮我从公司导航回家",
			expectedType:  intent.TypeStart,
			expectedStart: "公司",
			expectedEnd:   intent.NoDestination,
			expectedValid: true,
		},
		{
			name:          "city alias rewritten",
			command:       "从魔都到帝都",
			expectedType:  intent.TypeRoute,
			expectedStart: "上海",
			expectedEnd:   "北京",
			expectedValid: true,
		},
		{
			name:          "unrecognized text",
			command:       "今天天气怎么样",
			expectedType:  intent.TypeUnknown,
			expectedValid: true,
		},
		{
			name:          "empty command",
			command:       "",
			expectedType:  intent.TypeUnknown,
			expectedValid: true,
		},
	}

	h := NewHandler(createTestConfig(), nil, nil, NewTestLogger(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := h.Execute(context.Background(), &Input{Command: tt.command})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedType, output.Intent.Type)
			assert.Equal(t, tt.expectedStart, output.Intent.Entities.Start)
			assert.Equal(t, tt.expectedEnd, output.Intent.Entities.End)
			assert.Equal(t, tt.command, output.Intent.OriginalCommand)
			assert.Equal(t, tt.expectedValid, output.Validation.Valid)

			if tt.expectedType == intent.TypeUnknown {
				assert.Equal(t, intent.UnknownConfidence, output.Intent.Confidence)
			} else {
				assert.Equal(t, intent.MatchConfidence, output.Intent.Confidence)
			}
		})
	}
}

func TestHandler_Execute_StoresIntentInSession(t *testing.T) {
	db, mock := redismock.NewClientMock()
	h := NewHandler(createTestConfig(), nil, db, NewTestLogger(t))

	parsed := intent.NewDefaultParser().Parse("导航从北京到上海")
	payload, err := json.Marshal(parsed)
	require.NoError(t, err)

	mock.ExpectSet("session:intent:sess-42", payload, 30*time.Minute).SetVal("OK")

	output, err := h.Execute(context.Background(), &Input{
		Command:   "导航从北京到上海",
		SessionID: "sess-42",
	})
	require.NoError(t, err)
	assert.True(t, output.Validation.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RetriesSessionStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	h := NewHandler(createTestConfig(), nil, db, NewTestLogger(t))

	parsed := intent.NewDefaultParser().Parse("去天安门")
	payload, err := json.Marshal(parsed)
	require.NoError(t, err)

	mock.ExpectSet("session:intent:sess-7", payload, 30*time.Minute).SetErr(errors.New("connection reset"))
	mock.ExpectSet("session:intent:sess-7", payload, 30*time.Minute).SetVal("OK")

	_, err = h.Execute(context.Background(), &Input{
		Command:   "去天安门",
		SessionID: "sess-7",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_SessionStoreFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	h := NewHandler(createTestConfig(), nil, db, NewTestLogger(t))

	parsed := intent.NewDefaultParser().Parse("去天安门")
	payload, err := json.Marshal(parsed)
	require.NoError(t, err)

	mock.ExpectSet("session:intent:sess-9", payload, 30*time.Minute).SetErr(errors.New("connection reset"))
	mock.ExpectSet("session:intent:sess-9", payload, 30*time.Minute).SetErr(errors.New("connection reset"))

	_, err = h.Execute(context.Background(), &Input{
		Command:   "去天安门",
		SessionID: "sess-9",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionStoreFailed))
}

func TestHandler_Execute_SkipsStoreWithoutSession(t *testing.T) {
	db, mock := redismock.NewClientMock()
	h := NewHandler(createTestConfig(), nil, db, NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{Command: "去天安门"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InvalidIntentCompletesNormally(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, nil, NewTestLogger(t))

	// A bare connective leaves route fields empty, which is a
	// classification result, not a processing failure.
	output, err := h.Execute(context.Background(), &Input{Command: "从到"})
	require.NoError(t, err)
	assert.True(t, output.Validation.Valid)
	assert.Equal(t, intent.TypeUnknown, output.Intent.Type)
}
