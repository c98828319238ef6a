package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MikeSquared-Agency/axion/internal/anthropic"
	"github.com/MikeSquared-Agency/axion/internal/api"
	"github.com/MikeSquared-Agency/axion/internal/autobound"
	"github.com/MikeSquared-Agency/axion/internal/cache"
	"github.com/MikeSquared-Agency/axion/internal/chat"
	"github.com/MikeSquared-Agency/axion/internal/completion"
	"github.com/MikeSquared-Agency/axion/internal/config"
	"github.com/MikeSquared-Agency/axion/internal/export"
	"github.com/MikeSquared-Agency/axion/internal/gemini"
	"github.com/MikeSquared-Agency/axion/internal/github"
	"github.com/MikeSquared-Agency/axion/internal/hermes"
	"github.com/MikeSquared-Agency/axion/internal/mailer"
	"github.com/MikeSquared-Agency/axion/internal/openrouter"
	"github.com/MikeSquared-Agency/axion/internal/outreach"
	"github.com/MikeSquared-Agency/axion/internal/prompt"
	"github.com/MikeSquared-Agency/axion/internal/store"
	"github.com/MikeSquared-Agency/axion/internal/visitor"
)

const usage = "usage: axion [serve|export]"

func main() {
	// A missing .env is normal in deployed environments.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "serve" && cmd != "export" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := cfg.Validate(cmd); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch cmd {
	case "serve":
		err = serve(ctx, cfg)
	case "export":
		err = runExport(ctx, cfg)
	}
	if err != nil {
		slog.Error("axion failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	slog.Info("axion starting", "port", cfg.Port, "store", cfg.StoreBackend)

	profile, err := prompt.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	records, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer records.Close()

	events, closeEvents := connectEvents(ctx, cfg)
	defer closeEvents()

	var replyCache chat.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.ChatCacheTTL)
		if err != nil {
			slog.Warn("redis unavailable, chat replies will not be cached", "error", err)
		} else {
			defer rc.Close()
			replyCache = rc
			slog.Info("chat cache ready", "ttl", cfg.ChatCacheTTL)
		}
	}

	llm := newCompleter(ctx, cfg)
	mail := mailer.NewResend(cfg.ResendAPIKey, cfg.ResendSender, slog.Default())
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, outgoing email will fail")
	}

	chatSvc := chat.NewService(llm, cfg.ChatModels, profile, replyCache, slog.Default())
	drafter := outreach.NewDrafter(llm, cfg.OutreachModels, profile, cfg.ResumeLink, slog.Default())
	visitorSvc := visitor.NewService(records, drafter, mail, events, slog.Default())
	orchestrator := outreach.NewOrchestrator(
		records,
		mail,
		github.NewClient(cfg.GithubToken),
		autobound.NewClient(cfg.AutoboundAPIKey, cfg.OwnerEmail),
		profile.OwnerName(),
		cfg.ResumeLink,
		slog.Default(),
	)

	srv := api.NewServer(api.Options{
		Port:          cfg.Port,
		RedirectURL:   cfg.RedirectURL,
		CORSOrigins:   cfg.CORSOrigins,
		ChatRateLimit: cfg.ChatRateLimitRPS,
		ChatRateBurst: cfg.ChatRateLimitBurst,
	}, chatSvc, visitorSvc, orchestrator, slog.Default())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	slog.Info("axion ready", "port", cfg.Port, "chat_models", cfg.ChatModels, "outreach_models", cfg.OutreachModels)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("axion stopped")
	return nil
}

func runExport(ctx context.Context, cfg config.Config) error {
	records, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer records.Close()

	events, closeEvents := connectEvents(ctx, cfg)
	defer closeEvents()

	mail := mailer.NewResend(cfg.ResendAPIKey, cfg.ResendSender, slog.Default())
	exp := export.NewExporter(records, mail, events, cfg.ExportDir, cfg.OwnerEmail, slog.Default())

	res, err := exp.Run(ctx, time.Now())
	if err != nil {
		return err
	}
	slog.Info("export complete", "path", res.Path, "records", res.Records, "digest_sent", res.DigestSent)
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	var backend store.Backend
	switch cfg.StoreBackend {
	case "memory":
		backend = store.NewMemory()
		slog.Warn("using in-memory record store, records are lost on restart")
	case "csv":
		b, err := store.OpenCSV(cfg.StorePath, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("open csv store: %w", err)
		}
		backend = b
		slog.Info("csv store ready", "path", cfg.StorePath)
	case "postgres":
		b, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		backend = b
		slog.Info("database connected")
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return store.New(backend), nil
}

// connectEvents returns a nil publisher when NATS is not configured or
// unreachable; events are optional.
func connectEvents(ctx context.Context, cfg config.Config) (visitor.Publisher, func()) {
	if cfg.NatsURL == "" {
		return nil, func() {}
	}
	client, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Warn("NATS unavailable, events disabled", "error", err)
		return nil, func() {}
	}
	slog.Info("NATS connected", "url", cfg.NatsURL)
	return client, client.Close
}

// newCompleter routes bare model IDs to OpenRouter and "anthropic:" or
// "gemini:" prefixed IDs to those providers when their keys are set.
func newCompleter(ctx context.Context, cfg config.Config) completion.Completer {
	router := completion.NewRouter(
		openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.LLMTimeout).
			WithSite(cfg.RedirectURL, "axion"),
	)

	if cfg.AnthropicAPIKey != "" {
		router.Register("anthropic", anthropic.NewClient(cfg.AnthropicAPIKey, cfg.LLMTimeout))
	} else {
		router.Register("anthropic", nil)
	}

	if cfg.GeminiAPIKey != "" {
		gc, err := gemini.New(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey, Timeout: cfg.LLMTimeout})
		if err != nil {
			slog.Warn("gemini client unavailable", "error", err)
			router.Register("gemini", nil)
		} else {
			router.Register("gemini", gc)
		}
	} else {
		router.Register("gemini", nil)
	}
	return router
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
