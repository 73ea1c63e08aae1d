// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garyellow/groundwater-bot-go/internal/alias"
	"github.com/garyellow/groundwater-bot-go/internal/bot"
	"github.com/garyellow/groundwater-bot-go/internal/buildinfo"
	"github.com/garyellow/groundwater-bot-go/internal/config"
	"github.com/garyellow/groundwater-bot-go/internal/dataset"
	"github.com/garyellow/groundwater-bot-go/internal/genai"
	"github.com/garyellow/groundwater-bot-go/internal/geocode"
	"github.com/garyellow/groundwater-bot-go/internal/intent"
	"github.com/garyellow/groundwater-bot-go/internal/logger"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
	"github.com/garyellow/groundwater-bot-go/internal/r2client"
	"github.com/garyellow/groundwater-bot-go/internal/ratelimit"
	"github.com/garyellow/groundwater-bot-go/internal/records"
	"github.com/garyellow/groundwater-bot-go/internal/sentry"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
	"github.com/garyellow/groundwater-bot-go/internal/webhook"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	db             *storage.DB
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	records        *records.Store
	processor      *bot.Processor
	chain          *genai.Chain
	geocoder       *geocode.Client
	objects        *r2client.Client
	webhookHandler *webhook.Handler // nil when LINE is not configured
	userLimiter    *ratelimit.KeyedLimiter
	router         *gin.Engine
	server         *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStack.Token,
		BetterStackEndpoint: cfg.BetterStack.Endpoint,
	})

	log = log.WithField("service", "groundwater-bot")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Package-level slog.*Context calls go through the ContextHandler too.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStack.Token != "" {
		log.WithField("endpoint", cfg.BetterStack.Endpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     buildinfo.Release(),
		SampleRate:  cfg.Sentry.SampleRate,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed")
	} else if sentry.IsEnabled() {
		log.WithField("release", buildinfo.Release()).Info("Sentry error tracking enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	db, err := storage.New(ctx, cfg.SQLitePath())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	var objects *r2client.Client
	if cfg.R2.Enabled() {
		objects, err = r2client.New(ctx, r2client.Config{
			Endpoint:    r2client.EndpointForAccount(cfg.R2.AccountID),
			AccessKeyID: cfg.R2.AccessKeyID,
			SecretKey:   cfg.R2.SecretAccessKey,
			BucketName:  cfg.R2.BucketName,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("r2: %w", err)
		}
		log.WithField("bucket", objects.Bucket()).Info("R2 object storage enabled")
	}

	if cfg.DatasetPath != "" {
		loader := dataset.NewLoader(objectStore(objects), m, log.WithModule("dataset").Logger)
		if _, err := loader.Seed(ctx, db, cfg.DatasetPath); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("dataset: %w", err)
		}
	}

	store, err := records.Load(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("records: %w", err)
	}
	m.SetRecordsLoaded(store.Len())
	if store.Len() == 0 {
		log.Warn("No groundwater records loaded, data queries will report no data")
	} else {
		log.WithField("count", store.Len()).Info("Groundwater records loaded")
	}

	chain := genai.NewChainFromConfig(ctx, genai.Config{
		Providers: cfg.LLM.Providers,
		APIKeys: map[genai.Provider]string{
			genai.ProviderGemini:   cfg.LLM.GeminiAPIKey,
			genai.ProviderGroq:     cfg.LLM.GroqAPIKey,
			genai.ProviderCerebras: cfg.LLM.CerebrasAPIKey,
		},
		Models: map[genai.Provider]string{
			genai.ProviderGemini:   cfg.LLM.GeminiModel,
			genai.ProviderGroq:     cfg.LLM.GroqModel,
			genai.ProviderCerebras: cfg.LLM.CerebrasModel,
		},
		MaxTokens: cfg.LLM.MaxTokens,
	}, m)

	resolver := alias.NewDefaultResolver()

	geocoder := geocode.NewClient(cfg.Geocode.APIKey,
		geocode.WithHTTPClient(&http.Client{Timeout: cfg.Geocode.Timeout}),
		geocode.WithRateLimit(cfg.Geocode.RPS),
		geocode.WithMetrics(m),
	)
	if !geocoder.Enabled() {
		log.Info("Google Maps API key not set, location queries will not resolve")
	}

	processor := bot.NewProcessor(bot.ProcessorConfig{
		Classifier: intent.NewClassifier(resolver),
		Records:    store,
		Fallback:   genai.NewAssistant(chain, cfg.LLM.Timeout, m),
		Locator:    geocode.NewLocator(geocoder, resolver, log.WithModule("geocode").Logger),
		Logger:     log.WithModule("bot"),
		Metrics:    m,
	})

	var (
		webhookHandler *webhook.Handler
		userLimiter    *ratelimit.KeyedLimiter
	)
	if cfg.LINE.Enabled() {
		hcfg := webhook.HandlerConfig{
			ChannelSecret: cfg.LINE.ChannelSecret,
			ChannelToken:  cfg.LINE.ChannelAccessToken,
			Language:      cfg.LINE.Language,
			Processor:     processor,
			Metrics:       m,
			Logger:        log.WithModule("webhook"),
		}
		if cfg.LINE.UserRatePerMinute > 0 {
			userLimiter = ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
				Name:      "line_user",
				Burst:     cfg.LINE.UserBurst,
				PerMinute: cfg.LINE.UserRatePerMinute,
				Metrics:   m,
			})
			hcfg.UserLimiter = userLimiter
		}
		webhookHandler, err = webhook.NewHandler(hcfg)
		if err != nil {
			if userLimiter != nil {
				userLimiter.Stop()
			}
			_ = chain.Close()
			_ = db.Close()
			return nil, fmt.Errorf("webhook: %w", err)
		}
		log.Info("LINE webhook enabled")
	}

	gin.SetMode(gin.ReleaseMode)

	app := &Application{
		cfg:            cfg,
		logger:         log,
		db:             db,
		metrics:        m,
		registry:       registry,
		records:        store,
		processor:      processor,
		chain:          chain,
		geocoder:       geocoder,
		objects:        objects,
		webhookHandler: webhookHandler,
		userLimiter:    userLimiter,
	}
	app.router = app.newRouter()

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router,
		ReadHeaderTimeout: config.HTTPRead,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}

	log.Info("Initialization complete")
	return app, nil
}

// objectStore keeps a nil *r2client.Client from becoming a non-nil interface.
func objectStore(c *r2client.Client) dataset.ObjectStore {
	if c == nil {
		return nil
	}
	return c
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts down.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-errCh:
		a.logger.WithError(err).Error("HTTP server error")
		_ = a.shutdown()
		return fmt.Errorf("http server: %w", err)
	}

	return a.shutdown()
}

// shutdown stops HTTP first so no new webhook work arrives, drains the
// webhook, then closes clients and the database. Logs and Sentry go last.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	if a.webhookHandler != nil {
		a.logger.Info("Waiting for webhook events to complete...")
		if err := a.webhookHandler.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Warn("Webhook handler shutdown timeout")
		}
	}
	if a.userLimiter != nil {
		a.userLimiter.Stop()
	}

	a.logger.Info("Closing resources...")

	if a.chain != nil {
		if err := a.chain.Close(); err != nil {
			a.logger.WithError(err).WithField("component", "llm_chain").Error("Component close error")
		}
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "database").Error("Component close error")
	}

	a.logger.Info("Shutdown complete")

	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("Logger shutdown timed out")
	}

	sentry.Flush(2 * time.Second)
	return nil
}
