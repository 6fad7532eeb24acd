package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/memelab/internal/metrics"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler"
	"github.com/mandalnilabja/memelab/internal/transport/http/middleware"
	"github.com/mandalnilabja/memelab/internal/transport/http/middleware/ratelimit"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger *slog.Logger

	// Limiter throttles generate calls per client IP. nil disables it.
	Limiter *ratelimit.Limiter

	// Metrics serves /metrics and records request metrics when set.
	Metrics *metrics.Collector
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	if opts == nil {
		opts = &RouterOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	limit := ratelimit.Middleware(opts.Limiter)
	mux.Handle("POST /api/generate-image", limit(http.HandlerFunc(repo.Generate.GenerateImage)))
	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)

	if repo.Usage != nil {
		mux.HandleFunc("GET /api/usage", repo.Usage.GetUsageStats)
		mux.HandleFunc("GET /api/usage/daily", repo.Usage.GetDailyUsage)
		mux.HandleFunc("GET /api/usage/logs", repo.Usage.GetGenerationLogs)
	}

	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}

	registerWebUIRoutes(mux, repo)

	// Apply middleware chain (order: outer to inner)
	var h http.Handler = mux
	if opts.Metrics != nil {
		h = middleware.Metrics(opts.Metrics)(h)
	}

	return middleware.Chain(h,
		middleware.Recovery(logger),
		middleware.CORS,
		middleware.RequestID,
		middleware.RequestLogger(logger),
	)
}

// registerWebUIRoutes adds the page, its assets and the default image.
func registerWebUIRoutes(mux *http.ServeMux, repo *handler.Repo) {
	webUI := repo.WebUI.WebUIHandler()

	mux.HandleFunc("GET /kameraboy.png", repo.WebUI.DefaultImageHandler)
	mux.Handle("GET /static/", webUI)
	mux.Handle("GET /", webUI)
}
