// internal/workers/voice-navigation/execute-navigation/config.go
package executenavigation

import "time"

type Config struct {
	DefaultProvider string
	DefaultMode     string
	BaiduMCPURL     string
	AmapMCPURL      string
	LaunchBrowser   bool
	Timeout         time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DefaultProvider: "baidu_map",
		DefaultMode:     "transit",
		Timeout:         30 * time.Second,
	}
}
