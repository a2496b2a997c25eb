package resolveplace

import "navpilot-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"intent"},
		Properties: map[string]validation.Property{
			"intent": {
				Type:        "object",
				Description: "Parsed navigation intent",
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"intent": {
				Type:        "object",
				Description: "Intent with resolved place names",
			},
			"resolvedStart": {
				Type:        "boolean",
				Description: "Whether the start entity was replaced by an index hit",
			},
			"resolvedEnd": {
				Type:        "boolean",
				Description: "Whether the end entity was replaced by an index hit",
			},
		},
		AdditionalProperties: false,
	}
}
