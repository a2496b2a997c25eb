// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"navpilot-workers/internal/common/camunda"
	"navpilot-workers/internal/common/config"
	"navpilot-workers/internal/common/database"
	"navpilot-workers/internal/common/logger"
	"navpilot-workers/internal/common/observability"
	"navpilot-workers/internal/intent"
	"navpilot-workers/pkg/registry"

	en "navpilot-workers/internal/workers/voice-navigation/execute-navigation"
	pni "navpilot-workers/internal/workers/voice-navigation/parse-navigation-intent"
	rp "navpilot-workers/internal/workers/voice-navigation/resolve-place"
	snl "navpilot-workers/internal/workers/voice-navigation/send-navigation-link"
	tvc "navpilot-workers/internal/workers/voice-navigation/transcribe-voice-command"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")
	zeebeClient := camundaClient.GetClient()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init PostgreSQL (optional, seeds alias tables) ---
	cityAliases := intent.DefaultCityAliases()
	if cfg.Database.Postgres.Host != "" {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Warn("postgres unavailable, using built-in alias tables", zap.Error(err))
		} else {
			loaded, err := intent.LoadCityAliases(ctx, pg.DB)
			if err != nil {
				zapLog.Warn("city alias load failed, using built-in alias tables", zap.Error(err))
			} else if len(loaded) > 0 {
				cityAliases = loaded
				zapLog.Info("city aliases loaded from postgres", zap.Int("groups", len(loaded)))
			}
			pg.Close()
		}
	}

	parser := intent.NewParser(cityAliases, intent.DefaultCategoryAliases())

	// --- Init Elasticsearch (optional, backs the POI index) ---
	var esClient *database.ElasticsearchClient
	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Warn("elasticsearch unavailable, place resolution degrades to pass-through", zap.Error(err))
			esClient = nil
		} else {
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Activity Registry (startup inventory logging) ---
	if cfg.Registry.Path != "" {
		if reg, err := registry.LoadRegistry(cfg.Registry.Path); err != nil {
			zapLog.Warn("activity registry not loaded", zap.Error(err))
		} else {
			zapLog.Info("activity registry loaded",
				zap.String("version", reg.Version),
				zap.Int("activities", len(reg.Activities)),
			)
		}
	}

	// --- Register Workers ---

	if cfg.Workers[tvc.TaskType].Enabled {
		handler := tvc.NewHandler(
			&tvc.Config{
				Enabled:    cfg.Speech.Enabled,
				BaseURL:    cfg.Speech.BaseURL,
				APIKey:     cfg.Speech.APIKey,
				Language:   cfg.Speech.Language,
				Timeout:    time.Duration(cfg.Speech.Timeout) * time.Millisecond,
				MaxRetries: cfg.Workers[tvc.TaskType].MaxRetries,
			},
			&transcribeLoggerAdapter{log},
		)
		startWorker(zeebeClient, tvc.TaskType, cfg.Workers[tvc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[pni.TaskType].Enabled {
		handler := pni.NewHandler(
			&pni.Config{
				Timeout:    time.Duration(cfg.Workers[pni.TaskType].Timeout) * time.Millisecond,
				MaxRetries: cfg.Workers[pni.TaskType].MaxRetries,
				SessionTTL: time.Duration(cfg.Session.TTL) * time.Second,
			},
			parser, redis.Client,
			&parseIntentLoggerAdapter{log},
		)
		startWorker(zeebeClient, pni.TaskType, cfg.Workers[pni.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rp.TaskType].Enabled {
		handler := rp.NewHandler(
			&rp.Config{
				Index:   cfg.Database.Elasticsearch.POIIndex,
				Timeout: time.Duration(cfg.Workers[rp.TaskType].Timeout) * time.Millisecond,
			},
			esClientOrNil(esClient),
			&resolvePlaceLoggerAdapter{log},
		)
		startWorker(zeebeClient, rp.TaskType, cfg.Workers[rp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[en.TaskType].Enabled {
		handler := en.NewHandler(
			&en.Config{
				DefaultProvider: cfg.Maps.DefaultProvider,
				DefaultMode:     cfg.Maps.DefaultMode,
				BaiduMCPURL:     cfg.Maps.Baidu.MCPURL,
				AmapMCPURL:      cfg.Maps.Amap.MCPURL,
				LaunchBrowser:   cfg.Gateway.LocalMode,
				Timeout:         time.Duration(cfg.Workers[en.TaskType].Timeout) * time.Millisecond,
			},
			&executeNavigationLoggerAdapter{log},
		)
		startWorker(zeebeClient, en.TaskType, cfg.Workers[en.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[snl.TaskType].Enabled {
		handler, err := snl.NewHandler(
			&snl.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				SMSSenderID:  cfg.Notifications.SMS.DefaultSMSSenderID,
				AWSRegion:    cfg.Notifications.AWS.Region,
				Timeout:      time.Duration(cfg.Workers[snl.TaskType].Timeout) * time.Millisecond,
			},
			&sendLinkLoggerAdapter{log},
		)
		if err != nil {
			zapLog.Fatal("failed to create send-navigation-link handler", zap.Error(err))
		}
		startWorker(zeebeClient, snl.TaskType, cfg.Workers[snl.TaskType], handler.Handle, zapLog)
	}

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}

func esClientOrNil(c *database.ElasticsearchClient) *elasticsearch.Client {
	if c == nil {
		return nil
	}
	return c.Client
}

// Logger adapters for workers that declare their own Logger interfaces
type transcribeLoggerAdapter struct {
	logger.Logger
}

func (a *transcribeLoggerAdapter) With(fields map[string]interface{}) tvc.Logger {
	return &transcribeLoggerAdapter{a.Logger.With(fields)}
}

type parseIntentLoggerAdapter struct {
	logger.Logger
}

func (a *parseIntentLoggerAdapter) With(fields map[string]interface{}) pni.Logger {
	return &parseIntentLoggerAdapter{a.Logger.With(fields)}
}

type resolvePlaceLoggerAdapter struct {
	logger.Logger
}

func (a *resolvePlaceLoggerAdapter) With(fields map[string]interface{}) rp.Logger {
	return &resolvePlaceLoggerAdapter{a.Logger.With(fields)}
}

type executeNavigationLoggerAdapter struct {
	logger.Logger
}

func (a *executeNavigationLoggerAdapter) With(fields map[string]interface{}) en.Logger {
	return &executeNavigationLoggerAdapter{a.Logger.With(fields)}
}

type sendLinkLoggerAdapter struct {
	logger.Logger
}

func (a *sendLinkLoggerAdapter) With(fields map[string]interface{}) snl.Logger {
	return &sendLinkLoggerAdapter{a.Logger.With(fields)}
}
