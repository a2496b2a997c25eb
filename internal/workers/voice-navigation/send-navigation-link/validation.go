package sendnavigationlink

import "navpilot-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"navigationUrl"},
		Properties: map[string]validation.Property{
			"navigationUrl": {
				Type:        "string",
				Description: "Navigation URL to deliver",
				MaxLength:   intPtr(2000),
			},
			"phone": {
				Type:        "string",
				Description: "SMS recipient in E.164 format",
				MaxLength:   intPtr(20),
			},
			"email": {
				Type:        "string",
				Description: "Email recipient",
				MaxLength:   intPtr(255),
			},
			"message": {
				Type:        "string",
				Description: "Route summary included with the link",
				MaxLength:   intPtr(500),
			},
			"providerName": {
				Type:        "string",
				Description: "Map provider display name",
				MaxLength:   intPtr(50),
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
			"notificationId": {
				Type:        "string",
				Description: "Delivery identifier",
			},
			"status": {
				Type:        "string",
				Description: "Delivery status",
				Enum:        []string{"sent", "disabled"},
			},
			"channels": {
				Type:        "array",
				Description: "Channels the link was delivered on",
			},
			"sentAt": {
				Type:        "string",
				Description: "Timestamp of delivery",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
