package transcribevoicecommand

import "navpilot-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"audio": {
				Type:        "string",
				Description: "Base64-encoded audio payload",
			},
			"format": {
				Type:        "string",
				Description: "Audio container format",
				Enum:        []string{"wav", "mp3", "pcm"},
			},
			"fallbackText": {
				Type:        "string",
				Description: "Command text used when speech recognition is disabled",
				MaxLength:   intPtr(500),
			},
			"sessionId": {
				Type:        "string",
				Description: "Conversation session identifier",
				MaxLength:   intPtr(255),
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"command": {
				Type:        "string",
				Description: "Transcribed command text",
			},
			"confidence": {
				Type:        "number",
				Description: "Recognition confidence",
			},
			"mocked": {
				Type:        "boolean",
				Description: "Whether the offline fallback produced the text",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
