// internal/workers/voice-navigation/transcribe-voice-command/config.go
package transcribevoicecommand

import "time"

type Config struct {
	Enabled    bool
	BaseURL    string
	APIKey     string
	Language   string
	Timeout    time.Duration
	MaxRetries int
}

func LoadConfig() *Config {
	return &Config{
		Language: "zh-CN",
		Timeout:  30 * time.Second,
	}
}
