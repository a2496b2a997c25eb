// internal/workers/voice-navigation/resolve-place/config.go
package resolveplace

import "time"

type Config struct {
	Index   string
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:   "poi_places",
		Timeout: 30 * time.Second,
	}
}
