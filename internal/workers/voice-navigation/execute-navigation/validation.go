package executenavigation

import "navpilot-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"intent"},
		Properties: map[string]validation.Property{
			"intent": {
				Type:        "object",
				Description: "Validated navigation intent",
			},
			"provider": {
				Type:        "string",
				Description: "Map provider override",
				Enum:        []string{"baidu_map", "amap"},
			},
			"mode": {
				Type:        "string",
				Description: "Transport mode override",
				Enum:        []string{"transit", "driving", "walking"},
			},
		},
		AdditionalProperties: false,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"success": {
				Type:        "boolean",
				Description: "Whether a route was produced",
			},
			"navigationUrl": {
				Type:        "string",
				Description: "Provider navigation URL",
			},
			"provider": {
				Type:        "string",
				Description: "Map provider that served the request",
			},
			"providerName": {
				Type:        "string",
				Description: "Provider display name",
			},
			"path": {
				Type:        "string",
				Description: "How the URL was produced",
				Enum:        []string{"mcp", "fallback"},
			},
			"message": {
				Type:        "string",
				Description: "Human-readable result message",
			},
		},
		AdditionalProperties: false,
	}
}
