package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/legadokit/legado-agent-go/internal/config"
	"github.com/legadokit/legado-agent-go/internal/domain"
	"github.com/legadokit/legado-agent-go/internal/handler"
	"github.com/legadokit/legado-agent-go/internal/infra/cache"
	"github.com/legadokit/legado-agent-go/internal/infra/mail"
	"github.com/legadokit/legado-agent-go/internal/infra/observability"
	"github.com/legadokit/legado-agent-go/internal/infra/openai"
	"github.com/legadokit/legado-agent-go/internal/infra/pdf"
	"github.com/legadokit/legado-agent-go/internal/infra/resilience"
	"github.com/legadokit/legado-agent-go/internal/infra/supabase"
	"github.com/legadokit/legado-agent-go/internal/port"
	"github.com/legadokit/legado-agent-go/internal/service"
	"github.com/legadokit/legado-agent-go/internal/validate"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("use_supabase", cfg.UseSupabase),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.String("openai_model", cfg.OpenAIModel),
		zap.String("default_language", cfg.DefaultLanguage),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "legado-agent")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	assistantCache := cache.New[string](cfg.CacheTTL)
	statsCache := cache.New[*domain.ReportStatistics](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	openaiCB := resilience.NewCircuitBreaker("openai")
	supabaseCB := resilience.NewCircuitBreaker("supabase")
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	agent := openai.NewAgent(
		openai.Config{
			APIKey:       cfg.OpenAIAPIKey,
			Model:        cfg.OpenAIModel,
			AssistantID:  cfg.OpenAIAssistantID,
			PollInterval: cfg.AgentPollInterval,
			RunTimeout:   cfg.AgentRunTimeout,
		},
		openaiCB,
		resilienceCfg,
		assistantCache,
		metrics,
		logger,
	)

	renderer := pdf.NewRenderer()

	mailer, err := mail.NewMailer(
		mail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		},
		logger,
	)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}

	var store port.ReportStore
	if cfg.UseSupabase && cfg.SupabaseURL != "" {
		logger.Info("using Supabase as report store",
			zap.String("supabase_url", cfg.SupabaseURL),
		)
		store = supabase.NewClient(
			httpClient,
			cfg.SupabaseURL,
			cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey,
			supabaseCB,
			resilienceCfg,
			logger,
		)
	} else {
		logger.Warn("report store: Supabase not configured, persistence disabled")
	}

	// --- Services ---
	reportSvc := service.NewReportService(
		validate.New(),
		agent,
		renderer,
		mailer,
		store,
		statsCache,
		bulkhead,
		metrics,
		logger,
	)

	// --- Router ---
	router := handler.NewRouter(reportSvc, metrics, logger, cfg.DefaultLanguage)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
