// internal/workers/voice-navigation/send-navigation-link/models.go
package sendnavigationlink

type Input struct {
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	NavigationURL string `json:"navigationUrl"`
	Message       string `json:"message,omitempty"`
	ProviderName  string `json:"providerName,omitempty"`
	SessionID     string `json:"sessionId,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "disabled"
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)
