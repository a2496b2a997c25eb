// internal/workers/voice-navigation/resolve-place/models.go
package resolveplace

import "navpilot-workers/internal/intent"

type Input struct {
	Intent intent.Intent `json:"intent"`
}

type Output struct {
	Intent        intent.Intent `json:"intent"`
	ResolvedStart bool          `json:"resolvedStart"`
	ResolvedEnd   bool          `json:"resolvedEnd"`
}
