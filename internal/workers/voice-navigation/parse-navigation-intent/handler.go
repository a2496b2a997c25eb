// internal/workers/voice-navigation/parse-navigation-intent/handler.go
package parsenavigationintent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"navpilot-workers/internal/common/metrics"
	"navpilot-workers/internal/common/validation"
	"navpilot-workers/internal/intent"
)

const (
	TaskType = "parse-navigation-intent"

	sessionKeyPrefix = "session:intent:"
)

var (
	ErrSessionStoreFailed = errors.New("SESSION_STORE_FAILED")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	config   *Config
	parser   *intent.Parser
	sessions *redis.Client
	logger   Logger
}

// NewHandler wires the command engine into a job handler. The sessions
// client may be nil, in which case parsed intents are not persisted.
func NewHandler(config *Config, parser *intent.Parser, sessions *redis.Client, log Logger) *Handler {
	if parser == nil {
		parser = intent.NewDefaultParser()
	}
	return &Handler{
		config:   config,
		parser:   parser,
		sessions: sessions,
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

	variables, err := job.GetVariablesAsMap()
	if err != nil {
		h.failJob(client, job, fmt.Errorf("parse input: %w", err), 0)
		return
	}
	if result := validation.ValidateInput(variables, GetInputSchema()); !result.Valid {
		h.failJob(client, job, fmt.Errorf("input validation: %v", result.GetErrorMessages()), 0)
		return
	}

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
		if errors.Is(err, ErrSessionStoreFailed) {
			retries = 3
		}
		h.failJob(client, job, err, retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute runs the command through the engine. Parsing itself never
// fails: unknown and invalid commands complete normally with a low
// confidence or valid:false payload so the process model can branch on
// them. Only the session store can error out.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	parsed := h.parser.Parse(input.Command)
	validation := intent.Validate(parsed)

	metrics.CommandsParsed.WithLabelValues(string(parsed.Type)).Inc()
	if !validation.Valid {
		metrics.IntentValidationFailures.WithLabelValues(string(parsed.Type)).Inc()
	}

	if input.SessionID != "" && h.sessions != nil {
		if err := h.storeIntent(ctx, input.SessionID, parsed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSessionStoreFailed, err)
		}
	}

	h.logger.Info("command parsed", map[string]interface{}{
		"intentType": string(parsed.Type),
		"confidence": parsed.Confidence,
		"valid":      validation.Valid,
	})

	return &Output{Intent: *parsed, Validation: validation}, nil
}

// storeIntent keeps the last parsed intent per session so the gateway
// can answer status queries without re-parsing. Transient redis errors
// are retried with backoff inside the job timeout.
func (h *Handler) storeIntent(ctx context.Context, sessionID string, parsed *intent.Intent) error {
	payload, err := json.Marshal(parsed)
	if err != nil {
		return err
	}

	key := sessionKeyPrefix + sessionID

	var lastErr error
	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = h.sessions.Set(ctx, key, payload, h.config.SessionTTL).Err()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return lastErr
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
	if errors.Is(err, ErrSessionStoreFailed) {
		errorCode = "SESSION_STORE_FAILED"
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
