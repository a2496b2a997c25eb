package parsenavigationintent

import "navpilot-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"command"},
		Properties: map[string]validation.Property{
			"command": {
				Type:        "string",
				Description: "Natural language navigation command",
				MaxLength:   intPtr(500),
			},
			"sessionId": {
				Type:        "string",
				Description: "Conversation session identifier",
				MaxLength:   intPtr(255),
			},
		},
		// Upstream process variables flow into the job alongside the
		// declared inputs, so extras are tolerated.
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"intent": {
				Type:        "object",
				Description: "Parsed navigation intent",
			},
			"validation": {
				Type:        "object",
				Description: "Required-field check result",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
