// cmd/gateway/main.go
package main

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"navpilot-workers/internal/common/config"
	"navpilot-workers/internal/common/database"
	"navpilot-workers/internal/common/logger"
	"navpilot-workers/internal/gateway"
	"navpilot-workers/internal/intent"
	"navpilot-workers/pkg/registry"

	en "navpilot-workers/internal/workers/voice-navigation/execute-navigation"
	pni "navpilot-workers/internal/workers/voice-navigation/parse-navigation-intent"
	rp "navpilot-workers/internal/workers/voice-navigation/resolve-place"
	snl "navpilot-workers/internal/workers/voice-navigation/send-navigation-link"
	tvc "navpilot-workers/internal/workers/voice-navigation/transcribe-voice-command"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting gateway...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Redis (session context) ---
	redis, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("redis init failed", zap.Error(err))
	}
	if err := redis.Ping(ctx); err != nil {
		zapLog.Fatal("redis unreachable", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- PostgreSQL (optional, seeds alias tables) ---
	cityAliases := intent.DefaultCityAliases()
	if cfg.Database.Postgres.Host != "" {
		if pg, err := database.NewPostgres(cfg.Database.Postgres); err != nil {
			zapLog.Warn("postgres unavailable, using built-in alias tables", zap.Error(err))
		} else {
			if loaded, err := intent.LoadCityAliases(ctx, pg.DB); err != nil {
				zapLog.Warn("city alias load failed, using built-in alias tables", zap.Error(err))
			} else if len(loaded) > 0 {
				cityAliases = loaded
			}
			pg.Close()
		}
	}
	parser := intent.NewParser(cityAliases, intent.DefaultCategoryAliases())

	// --- Elasticsearch (optional, POI index) ---
	var esClient *elasticsearch.Client
	if len(cfg.Database.Elasticsearch.Addresses) > 0 {
		if es, err := database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
			zapLog.Warn("elasticsearch unavailable, place resolution degrades to pass-through", zap.Error(err))
		} else {
			esClient = es.Client
		}
	}

	// --- Pipeline handlers (same ones the worker manager registers) ---
	transcriber := tvc.NewHandler(
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

	intentHandler := pni.NewHandler(
		&pni.Config{
			Timeout:    time.Duration(cfg.Workers[pni.TaskType].Timeout) * time.Millisecond,
			MaxRetries: cfg.Workers[pni.TaskType].MaxRetries,
			SessionTTL: time.Duration(cfg.Session.TTL) * time.Second,
		},
		parser, redis.Client,
		&parseIntentLoggerAdapter{log},
	)

	resolver := rp.NewHandler(
		&rp.Config{
			Index:   cfg.Database.Elasticsearch.POIIndex,
			Timeout: time.Duration(cfg.Workers[rp.TaskType].Timeout) * time.Millisecond,
		},
		esClient,
		&resolvePlaceLoggerAdapter{log},
	)

	navigator := en.NewHandler(
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

	var notifier *snl.Handler
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		notifier, err = snl.NewHandler(
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
			zapLog.Fatal("failed to create notifier", zap.Error(err))
		}
	}

	service := gateway.NewService(gateway.Dependencies{
		Transcriber: transcriber,
		Parser:      intentHandler,
		Resolver:    resolver,
		Navigator:   navigator,
		Notifier:    notifier,
		Sessions:    redis.Client,
		ES:          esClient,
		Logger:      log,
	})
	var reg *registry.ActivityRegistry
	if cfg.Registry.Path != "" {
		if loaded, err := registry.LoadRegistry(cfg.Registry.Path); err != nil {
			zapLog.Warn("activity registry unavailable", zap.Error(err))
		} else {
			reg = loaded
		}
	}
	handler := gateway.NewHTTPHandler(service, reg)

	// --- Router ---
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", handler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", handler.WebSocket)
	router.Any("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))

	api := router.Group("/api")
	{
		api.POST("/navigate", handler.Navigate)
		api.GET("/status", handler.Status)
		api.GET("/activities", handler.Activities)
	}

	addr := cfg.Gateway.Addr()
	zapLog.Info("gateway listening", zap.String("addr", addr))

	go func() {
		if err := router.Run(addr); err != nil {
			zapLog.Fatal("gateway server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Gateway stopped gracefully")
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
