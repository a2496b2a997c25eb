// internal/workers/voice-navigation/execute-navigation/models.go
package executenavigation

import "navpilot-workers/internal/intent"

type Input struct {
	Intent   intent.Intent `json:"intent"`
	Provider string        `json:"provider"`
	Mode     string        `json:"mode"`
}

type Output struct {
	Success       bool   `json:"success"`
	NavigationURL string `json:"navigationUrl"`
	Provider      string `json:"provider"`
	ProviderName  string `json:"providerName"`
	Path          string `json:"path"` // "mcp" or "fallback"
	Message       string `json:"message"`
}
