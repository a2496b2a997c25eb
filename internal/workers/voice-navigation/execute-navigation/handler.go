// internal/workers/voice-navigation/execute-navigation/handler.go
package executenavigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"navpilot-workers/internal/common/metrics"
	"navpilot-workers/internal/navigation"
)

const (
	TaskType = "execute-navigation"

	originHere = "我的位置"
)

var (
	ErrMissingDestination = errors.New("MISSING_LOCATION")
	ErrInvalidProvider    = errors.New("INVALID_MAP_PROVIDER")
	ErrMapServiceFailed   = errors.New("MAP_SERVICE_FAILED")
	ErrMapServiceTimeout  = errors.New("MAP_SERVICE_TIMEOUT")
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
	mcp    map[navigation.Provider]*navigation.MCPClient
	logger Logger
}

func NewHandler(config *Config, log Logger) *Handler {
	mcp := make(map[navigation.Provider]*navigation.MCPClient)
	if config.BaiduMCPURL != "" {
		mcp[navigation.ProviderBaidu] = navigation.NewMCPClient(config.BaiduMCPURL, config.Timeout)
	}
	if config.AmapMCPURL != "" {
		mcp[navigation.ProviderAmap] = navigation.NewMCPClient(config.AmapMCPURL, config.Timeout)
	}
	return &Handler{
		config: config,
		mcp:    mcp,
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
		if errors.Is(err, ErrMapServiceTimeout) {
			retries = 2
		} else if errors.Is(err, ErrMapServiceFailed) {
			retries = 3
		}
		h.failJob(client, job, err, retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	provider := navigation.Provider(input.Provider)
	if input.Provider == "" {
		provider = navigation.Provider(h.config.DefaultProvider)
	}
	if !navigation.ValidProvider(provider) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProvider, provider)
	}

	// The unspecified-destination sentinel never reaches a provider.
	if !input.Intent.HasEnd() {
		return nil, fmt.Errorf("%w: 缺少目的地位置", ErrMissingDestination)
	}
	destination := input.Intent.Entities.End

	origin := input.Intent.Entities.Start
	if !input.Intent.HasStart() {
		origin = originHere
	}

	mode := navigation.TransportMode(input.Mode)
	if input.Mode == "" {
		mode = navigation.TransportMode(h.config.DefaultMode)
	}

	navURL, path := h.openNavigation(ctx, provider, origin, destination, mode)
	if navURL == "" {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrMapServiceTimeout
		}

		var fits bool
		var err error
		navURL, fits, err = navigation.BuildURL(provider, origin, destination, mode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMapServiceFailed, err)
		}
		if !fits {
			h.logger.Warn("navigation url exceeds practical length limit", map[string]interface{}{
				"length": len(navURL),
			})
		}
		path = "fallback"
	}

	metrics.NavigationsLaunched.WithLabelValues(string(provider), path).Inc()

	if h.config.LaunchBrowser {
		if err := navigation.OpenBrowser(navURL); err != nil {
			// The planned route is still usable, so a local browser
			// problem does not fail the job.
			h.logger.Warn("browser launch failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	name := navigation.ProviderName(provider)
	h.logger.Info("navigation executed", map[string]interface{}{
		"provider": string(provider),
		"path":     path,
		"mode":     string(mode),
	})

	return &Output{
		Success:       true,
		NavigationURL: navURL,
		Provider:      string(provider),
		ProviderName:  name,
		Path:          path,
		Message:       fmt.Sprintf("正在通过%s规划从%s到%s的路线", name, origin, destination),
	}, nil
}

// openNavigation tries the provider's MCP endpoint. An empty URL means
// the caller should fall back to local URL templating.
func (h *Handler) openNavigation(ctx context.Context, provider navigation.Provider, origin, destination string, mode navigation.TransportMode) (string, string) {
	client, ok := h.mcp[provider]
	if !ok {
		return "", ""
	}

	result, err := client.OpenNavigation(ctx, origin, destination, navigation.ResolveMode(mode, provider))
	if err != nil {
		h.logger.Warn("mcp navigation failed, falling back to web url", map[string]interface{}{
			"provider": string(provider),
			"error":    err.Error(),
		})
		return "", ""
	}

	return result.NavigationURL(), "mcp"
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
	switch {
	case errors.Is(err, ErrMissingDestination):
		errorCode = "MISSING_LOCATION"
	case errors.Is(err, ErrInvalidProvider):
		errorCode = "INVALID_MAP_PROVIDER"
	case errors.Is(err, ErrMapServiceTimeout):
		errorCode = "MAP_SERVICE_TIMEOUT"
	case errors.Is(err, ErrMapServiceFailed):
		errorCode = "MAP_SERVICE_FAILED"
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
