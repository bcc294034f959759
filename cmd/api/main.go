package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/serenaspa/massoterapia-platform/internal/api/router"
	"github.com/serenaspa/massoterapia-platform/internal/chat"
	appconfig "github.com/serenaspa/massoterapia-platform/internal/config"
	"github.com/serenaspa/massoterapia-platform/internal/http/handlers"
	"github.com/serenaspa/massoterapia-platform/internal/notify"
	"github.com/serenaspa/massoterapia-platform/internal/observability/metrics"
	"github.com/serenaspa/massoterapia-platform/internal/reports"
	"github.com/serenaspa/massoterapia-platform/internal/store"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting massoterapia-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"storage", cfg.StorageBackend,
	)

	backend, err := buildBackend(cfg)
	if err != nil {
		logger.Error("failed to initialize storage backend", "error", err)
		os.Exit(1)
	}

	storeMetrics := metrics.NewStoreMetrics(nil)
	reportMetrics := metrics.NewReportMetrics(nil)
	chatMetrics := metrics.NewChatMetrics(nil)

	st := store.New(backend, storeMetrics, logger)
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st.Load(loadCtx, cfg.SeedDemoData)
	cancel()

	// Notifications are optional: without a SendGrid key the handlers simply
	// skip them.
	var notifier *notify.Service
	if cfg.SendGridAPIKey != "" && len(cfg.NotifyEmails) > 0 {
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		notifier = notify.NewService(sender, cfg.NotifyEmails, cfg.ClinicName, logger)
		logger.Info("email notifications enabled", "recipients", len(cfg.NotifyEmails))
	}

	routerCfg := &router.Config{
		Logger:             logger,
		LeadsHandler:       handlers.NewLeadsHandler(st, notifier, cfg.WhatsAppNumber, logger),
		ContactHandler:     handlers.NewContactHandler(st, notifier, logger),
		BookingsHandler:    handlers.NewBookingsHandler(st, notifier, logger),
		ClientsHandler:     handlers.NewClientsHandler(st, logger),
		CatalogHandler:     handlers.NewCatalogHandler(cfg.WhatsAppNumber),
		ChatHandler:        chat.NewHandler(cfg.ClinicPhone, chatMetrics, logger),
		ReportsHandler:     reports.NewHandler(st, reportMetrics, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func buildBackend(cfg *appconfig.Config) (store.Backend, error) {
	if cfg.StorageBackend == "redis" {
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		return store.NewRedisBackend(redis.NewClient(opts)), nil
	}
	return store.NewFileBackend(cfg.DataDir)
}
