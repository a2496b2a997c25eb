// internal/workers/voice-navigation/transcribe-voice-command/models.go
package transcribevoicecommand

type Input struct {
	Audio        string `json:"audio"`  // base64-encoded audio payload
	Format       string `json:"format"` // "wav", "mp3", "pcm"
	FallbackText string `json:"fallbackText"`
	SessionID    string `json:"sessionId"`
}

type Output struct {
	Command    string  `json:"command"`
	Confidence float64 `json:"confidence"`
	Mocked     bool    `json:"mocked"`
}
