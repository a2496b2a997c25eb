// internal/workers/voice-navigation/resolve-place/handler.go
package resolveplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	"navpilot-workers/internal/common/metrics"
)

const (
	TaskType = "resolve-place"
)

var (
	ErrPlaceLookupFailed  = errors.New("PLACE_LOOKUP_FAILED")
	ErrPlaceLookupTimeout = errors.New("PLACE_LOOKUP_TIMEOUT")
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
	resolver *poiResolver
	logger   Logger
}

// NewHandler wires a POI resolver over the given cluster. A nil client
// turns the worker into a pass-through, which keeps the pipeline
// functional when no POI index is deployed.
func NewHandler(config *Config, client *elasticsearch.Client, log Logger) *Handler {
	var resolver *poiResolver
	if client != nil {
		resolver = newPOIResolver(client, config.Index)
	}
	return &Handler{
		config:   config,
		resolver: resolver,
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
		if errors.Is(err, ErrPlaceLookupTimeout) {
			retries = 2
		} else if errors.Is(err, ErrPlaceLookupFailed) {
			retries = 3
		}
		h.failJob(client, job, err, retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// execute resolves both entity fields. Sentinel values and lookup
// misses pass through unchanged.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{Intent: input.Intent}

	if h.resolver == nil {
		return output, nil
	}

	if input.Intent.HasStart() {
		resolved, found, err := h.resolveField(ctx, input.Intent.Entities.Start)
		if err != nil {
			return nil, err
		}
		if found {
			output.Intent.Entities.Start = resolved
			output.ResolvedStart = true
		}
	}

	if input.Intent.HasEnd() {
		resolved, found, err := h.resolveField(ctx, input.Intent.Entities.End)
		if err != nil {
			return nil, err
		}
		if found {
			output.Intent.Entities.End = resolved
			output.ResolvedEnd = true
		}
	}

	h.logger.Info("places resolved", map[string]interface{}{
		"resolvedStart": output.ResolvedStart,
		"resolvedEnd":   output.ResolvedEnd,
	})

	return output, nil
}

func (h *Handler) resolveField(ctx context.Context, name string) (string, bool, error) {
	resolved, found, err := h.resolver.lookup(ctx, name)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", false, ErrPlaceLookupTimeout
		}
		return "", false, fmt.Errorf("%w: %v", ErrPlaceLookupFailed, err)
	}
	if !found {
		h.logger.Warn("place not found in index, passing through", map[string]interface{}{
			"place": name,
		})
	}
	return resolved, found, nil
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
	if errors.Is(err, ErrPlaceLookupTimeout) {
		errorCode = "PLACE_LOOKUP_TIMEOUT"
	} else if errors.Is(err, ErrPlaceLookupFailed) {
		errorCode = "PLACE_LOOKUP_FAILED"
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
