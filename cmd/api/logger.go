package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mandalnilabja/memelab/internal/config"
)

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func printStartupBanner(cfg *config.Config, addr string, usageLog bool) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "🎭 Memelab - Photo Remix Studio\n")
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "Web UI:     http://%s/\n", addr)
	fmt.Fprintf(os.Stderr, "Generate:   http://%s/api/generate-image\n", addr)
	fmt.Fprintf(os.Stderr, "Provider:   %s (%s)\n", cfg.Provider.Name, cfg.Provider.Model)
	if usageLog {
		fmt.Fprintf(os.Stderr, "Usage log:  %s\n", cfg.UsageDBPath)
	}
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}
