// internal/workers/voice-navigation/transcribe-voice-command/handler.go
package transcribevoicecommand

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"navpilot-workers/internal/common/metrics"
)

const (
	TaskType = "transcribe-voice-command"
)

var (
	ErrTranscriptionFailed = errors.New("SPEECH_TRANSCRIPTION_FAILED")
	ErrSpeechAPITimeout    = errors.New("SPEECH_API_TIMEOUT")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	config *Config
	client *http.Client
	logger Logger
}

func NewHandler(config *Config, log Logger) *Handler {
	return &Handler{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, fmt.Errorf("parse input: %w", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		retries := int32(0)
		if errors.Is(err, ErrSpeechAPITimeout) {
			retries = 1
		} else if errors.Is(err, ErrTranscriptionFailed) {
			retries = 2
		}
		h.failJob(client, job, err, retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	// Offline path: without a speech backend the command text travels
	// in fallbackText and is passed through verbatim.
	if !h.config.Enabled {
		h.logger.Info("speech disabled, using fallback text", map[string]interface{}{
			"sessionId": input.SessionID,
		})
		return &Output{
			Command:    input.FallbackText,
			Confidence: 1.0,
			Mocked:     true,
		}, nil
	}

	if input.Audio == "" {
		return nil, fmt.Errorf("%w: empty audio payload", ErrTranscriptionFailed)
	}
	if _, err := base64.StdEncoding.DecodeString(input.Audio); err != nil {
		return nil, fmt.Errorf("%w: audio is not valid base64: %v", ErrTranscriptionFailed, err)
	}

	requestBody := map[string]interface{}{
		"audio":    input.Audio,
		"language": h.config.Language,
	}
	if input.Format != "" {
		requestBody["format"] = input.Format
	}
	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {

		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrSpeechAPITimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", h.config.BaseURL+"/api/v1/recognize", bytes.NewBuffer(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if h.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
		}

		resp, lastErr = h.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {

			return nil, ErrSpeechAPITimeout
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrSpeechAPITimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrTranscriptionFailed, lastErr)
	}

	if resp == nil {
		return nil, fmt.Errorf("%w: no successful response after retries", ErrTranscriptionFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrTranscriptionFailed, err)
	}

	if apiResponse.Text == "" {
		return nil, fmt.Errorf("%w: empty transcription", ErrTranscriptionFailed)
	}

	h.logger.Info("audio transcribed", map[string]interface{}{
		"confidence": apiResponse.Confidence,
		"length":     len(apiResponse.Text),
	})

	return &Output{
		Command:    apiResponse.Text,
		Confidence: apiResponse.Confidence,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)

	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, retries int32) {
	errorCode := "UNKNOWN_ERROR"
	if errors.Is(err, ErrSpeechAPITimeout) {
		errorCode = "SPEECH_API_TIMEOUT"
	} else if errors.Is(err, ErrTranscriptionFailed) {
		errorCode = "SPEECH_TRANSCRIPTION_FAILED"
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":    job.Key,
		"error":     err.Error(),
		"errorCode": errorCode,
	})

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(errorCode + ": " + err.Error()).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
