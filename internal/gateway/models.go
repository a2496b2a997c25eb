// internal/gateway/models.go
package gateway

import "navpilot-workers/internal/intent"

// NavigateRequest is the body of POST /api/navigate and of the
// websocket "navigate" message. Either text or audio must be present.
type NavigateRequest struct {
	Text      string `json:"text,omitempty"`
	Audio     string `json:"audio,omitempty"` // base64, transcribed when speech is enabled
	SessionID string `json:"sessionId,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

type NavigateResponse struct {
	RequestID     string            `json:"requestId"`
	Success       bool              `json:"success"`
	Intent        intent.Intent     `json:"intent"`
	Validation    intent.Validation `json:"validation"`
	NavigationURL string            `json:"navigationUrl,omitempty"`
	Provider      string            `json:"provider,omitempty"`
	ProviderName  string            `json:"providerName,omitempty"`
	Message       string            `json:"message"`
}

// StatusResponse reports per-component health for GET /api/status.
type StatusResponse struct {
	Status     string            `json:"status"` // "ok" or "degraded"
	Components map[string]string `json:"components"`
}
