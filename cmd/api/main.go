package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mandalnilabja/memelab/internal/app"
	"github.com/mandalnilabja/memelab/internal/config"
	"github.com/mandalnilabja/memelab/internal/imagegen"
	"github.com/mandalnilabja/memelab/internal/metrics"
	"github.com/mandalnilabja/memelab/internal/provider"
	"github.com/mandalnilabja/memelab/internal/source"
	"github.com/mandalnilabja/memelab/internal/storage"
	"github.com/mandalnilabja/memelab/internal/tokenizer"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/generate"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/webui"
	"github.com/mandalnilabja/memelab/internal/transport/http/middleware/ratelimit"
	"github.com/mandalnilabja/memelab/web"
)

const appName = "memelab"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	startTime := time.Now()

	// 1. Configuration and logging
	cfg := config.Load()
	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector(appName)

	// 2. Default image source
	var src imagegen.ImageSource
	if cfg.DefaultImageURL != "" {
		remote, err := source.NewRemote(cfg.DefaultImageURL, cfg.RemoteImageTTL, &http.Client{Timeout: 30 * time.Second})
		if err != nil {
			return err
		}
		remote.Observe = collector.RecordImageLoad
		defer remote.Close()
		src = remote
	} else {
		src = source.NewLocal(cfg.DefaultImagePath, web.FS, web.DefaultImageName)
	}

	// 3. Provider backend, resolved once
	backend, err := provider.New(ctx, cfg.Provider, &http.Client{})
	if err != nil {
		return err
	}
	if !backend.Ready() {
		logger.Warn("image provider is not configured", "profile", cfg.Provider.Name, "reason", backend.Misconfigured.Message)
	}

	// 4. Prompt guard
	var tokens imagegen.TokenCounter
	if cfg.MaxPromptTokens > 0 {
		tk := tokenizer.New()
		if err := tk.Warm(cfg.Provider.Model); err != nil {
			logger.Warn("tokenizer warmup failed; prompt guard may be skipped", "error", err)
		}
		tokens = tk
	}

	normalizer := imagegen.NewNormalizer(src, tokens, imagegen.NormalizerOptions{
		AllowUpload:     cfg.AllowUpload,
		DefaultPrompt:   cfg.DefaultPrompt,
		MaxPromptTokens: cfg.MaxPromptTokens,
		Model:           cfg.Provider.Model,
	})
	svc := imagegen.NewService(backend, normalizer, imagegen.ServiceOptions{
		ProviderTimeout: cfg.ProviderTimeout,
		MaxConcurrent:   cfg.MaxConcurrentGenerations,
		Recorder:        collector,
	})

	// 5. Optional usage log
	var store storage.Storage
	if cfg.UsageDBPath != "" {
		if err := config.EnsureDir(cfg.UsageDBPath); err != nil {
			return err
		}
		store, err = storage.NewSQLiteStorage(cfg.UsageDBPath)
		if err != nil {
			return err
		}
		if n, err := storage.Prune(store, cfg.UsageRetentionDays, time.Now()); err != nil {
			logger.Warn("failed to prune usage log", "error", err)
		} else if n > 0 {
			logger.Info("pruned usage log", "deleted", n, "retention_days", cfg.UsageRetentionDays)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close usage log", "error", err)
			}
		}()
	}

	// 6. Handlers and router
	gen := generate.New(svc, store, logger, cfg.MaxBodyBytes)
	inf := infra.New(infra.Info{
		App:         appName,
		Profile:     cfg.Provider.Name,
		Model:       cfg.Provider.Model,
		Ready:       backend.Ready(),
		AllowUpload: cfg.AllowUpload,
	}, startTime)
	repo := handler.NewRepo(gen, webui.New(web.FS, web.DefaultImageName, cfg.DefaultImagePath), inf, store)

	router := app.NewRouter(repo, &app.RouterOptions{
		Logger:  logger,
		Limiter: ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Metrics: collector,
	})

	// 7. Serve until a signal arrives
	srv := app.NewServer(cfg, router, logger)
	if err := srv.Start(); err != nil {
		return err
	}
	printStartupBanner(cfg, srv.Addr(), store != nil)

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-srv.Errors():
		logger.Error("server exited unexpectedly", "error", err)
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	gen.Wait()
	return nil
}
