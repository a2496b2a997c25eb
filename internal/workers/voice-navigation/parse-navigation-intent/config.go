// internal/workers/voice-navigation/parse-navigation-intent/config.go
package parsenavigationintent

import "time"

type Config struct {
	Timeout    time.Duration
	MaxRetries int
	SessionTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		SessionTTL: 30 * time.Minute,
	}
}
