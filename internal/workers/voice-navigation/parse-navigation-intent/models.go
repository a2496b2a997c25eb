// internal/workers/voice-navigation/parse-navigation-intent/models.go
package parsenavigationintent

import "navpilot-workers/internal/intent"

type Input struct {
	Command   string `json:"command"`
	SessionID string `json:"sessionId"`
}

type Output struct {
	Intent     intent.Intent     `json:"intent"`
	Validation intent.Validation `json:"validation"`
}
