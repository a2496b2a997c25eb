// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Command parsing and validation
	ErrCodeMissingLocation      ErrorCode = "MISSING_LOCATION"
	ErrCodeUnrecognizedCommand  ErrorCode = "UNRECOGNIZED_COMMAND"
	ErrCodeInvalidCommandFormat ErrorCode = "INVALID_COMMAND_FORMAT"

	// Speech transcription
	ErrCodeSpeechTranscriptionFailed ErrorCode = "SPEECH_TRANSCRIPTION_FAILED"
	ErrCodeSpeechAPITimeout          ErrorCode = "SPEECH_API_TIMEOUT"

	// Place resolution
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodePlaceLookupFailed             ErrorCode = "PLACE_LOOKUP_FAILED"
	ErrCodePlaceLookupTimeout            ErrorCode = "PLACE_LOOKUP_TIMEOUT"

	// Navigation execution
	ErrCodeInvalidMapProvider  ErrorCode = "INVALID_MAP_PROVIDER"
	ErrCodeMapServiceFailed    ErrorCode = "MAP_SERVICE_FAILED"
	ErrCodeMapServiceTimeout   ErrorCode = "MAP_SERVICE_TIMEOUT"
	ErrCodeBrowserLaunchFailed ErrorCode = "BROWSER_LAUNCH_FAILED"

	// Delivery and state
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeSessionStoreFailed       ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	// Generic infrastructure
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeOperationTimeout ErrorCode = "OPERATION_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewMissingLocationError creates a non-retryable validation error for a
// required location entity that is absent or a sentinel.
func NewMissingLocationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingLocation,
		Message:   "Required location entity is missing",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnrecognizedCommandError creates a non-retryable error for text that
// matched no command template. Parsing itself never fails; this is for
// pipeline stages that require a usable intent.
func NewUnrecognizedCommandError(command string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnrecognizedCommand,
		Message:   "Command matched no navigation template",
		Details:   command,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCommandFormatError creates a non-retryable input error.
func NewInvalidCommandFormatError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCommandFormat,
		Message:   "Command input is structurally invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpeechTranscriptionFailedError creates a retryable transcription error.
func NewSpeechTranscriptionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSpeechTranscriptionFailed,
		Message:   "Speech transcription request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpeechAPITimeoutError creates a retryable timeout error.
func NewSpeechAPITimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSpeechAPITimeout,
		Message:   "Speech API did not respond in time",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewElasticsearchConnectionFailedError creates a retryable connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Failed to connect to Elasticsearch",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPlaceLookupFailedError creates a retryable place resolution error.
func NewPlaceLookupFailedError(place string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePlaceLookupFailed,
		Message:   "Place lookup failed",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"place": place},
		Timestamp: time.Now().UTC(),
	}
}

// NewPlaceLookupTimeoutError creates a retryable timeout error.
func NewPlaceLookupTimeoutError(place string) *StandardError {
	return &StandardError{
		Code:      ErrCodePlaceLookupTimeout,
		Message:   "Place lookup timed out",
		Retryable: true,
		Metadata:  map[string]interface{}{"place": place},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMapProviderError creates a non-retryable configuration error.
func NewInvalidMapProviderError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMapProvider,
		Message:   "Unsupported map provider",
		Details:   provider,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMapServiceFailedError creates a retryable map service error.
func NewMapServiceFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMapServiceFailed,
		Message:   "Map service navigation call failed",
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewMapServiceTimeoutError creates a retryable timeout error.
func NewMapServiceTimeoutError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMapServiceTimeout,
		Message:   "Map service did not respond in time",
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewBrowserLaunchFailedError creates a retryable local launch error.
func NewBrowserLaunchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBrowserLaunchFailed,
		Message:   "Failed to open navigation URL in browser",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   fmt.Sprintf("Failed to send %s notification", notificationType),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreFailedError creates a retryable session store error.
func NewSessionStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session context store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Failed to connect to database",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError creates a retryable error for a failing
// external dependency.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalService,
		Message:   fmt.Sprintf("External service %s failed", service),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError creates a retryable timeout error for an external
// dependency.
func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOperationTimeout,
		Message:   fmt.Sprintf("Operation against %s timed out", service),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. The
// process models use the internal codes verbatim.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeMissingLocation:               "MISSING_LOCATION",
	ErrCodeUnrecognizedCommand:           "UNRECOGNIZED_COMMAND",
	ErrCodeInvalidCommandFormat:          "INVALID_COMMAND_FORMAT",
	ErrCodeSpeechTranscriptionFailed:     "SPEECH_TRANSCRIPTION_FAILED",
	ErrCodeSpeechAPITimeout:              "SPEECH_API_TIMEOUT",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodePlaceLookupFailed:             "PLACE_LOOKUP_FAILED",
	ErrCodePlaceLookupTimeout:            "PLACE_LOOKUP_TIMEOUT",
	ErrCodeInvalidMapProvider:            "INVALID_MAP_PROVIDER",
	ErrCodeMapServiceFailed:              "MAP_SERVICE_FAILED",
	ErrCodeMapServiceTimeout:             "MAP_SERVICE_TIMEOUT",
	ErrCodeBrowserLaunchFailed:           "BROWSER_LAUNCH_FAILED",
	ErrCodeNotificationSendFailed:        "NOTIFICATION_SEND_FAILED",
	ErrCodeSessionStoreFailed:            "SESSION_STORE_FAILED",
	ErrCodeDatabaseConnectionFailed:      "DATABASE_CONNECTION_FAILED",
	ErrCodeExternalService:               "EXTERNAL_SERVICE_ERROR",
	ErrCodeOperationTimeout:              "OPERATION_TIMEOUT",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSpeechTranscriptionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodePlaceLookupFailed,
		ErrCodeMapServiceFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeSessionStoreFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeExternalService:
		return 3 // Retryable technical errors

	case ErrCodeSpeechAPITimeout,
		ErrCodePlaceLookupTimeout,
		ErrCodeMapServiceTimeout,
		ErrCodeOperationTimeout:
		return 2 // Partial retry for timeouts

	case ErrCodeBrowserLaunchFailed:
		return 1 // One extra attempt, then surface to the user

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SPEECH"):
		return "SPEECH"
	case strings.Contains(codeStr, "COMMAND") || strings.Contains(codeStr, "LOCATION"):
		return "PARSING"
	case strings.Contains(codeStr, "PLACE") || strings.Contains(codeStr, "ELASTICSEARCH"):
		return "PLACE_LOOKUP"
	case strings.Contains(codeStr, "MAP") || strings.Contains(codeStr, "BROWSER"):
		return "NAVIGATION"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "SESSION"):
		return "STORAGE"
	default:
		return "OTHER"
	}
}
