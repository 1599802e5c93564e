// Package router assembles the HTTP routes and middleware chain
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stilessandgravel/backend/internal/config"
	"github.com/stilessandgravel/backend/internal/handlers"
	"github.com/stilessandgravel/backend/internal/middleware"
	"github.com/stilessandgravel/backend/internal/models"
	"github.com/stilessandgravel/backend/internal/storage"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const msgTooManyQuotes = "Too many quote requests. Please try again shortly."

// Dependencies holds everything the router needs to build its handlers
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         handlers.DatabasePinger
	QuoteStore handlers.QuoteCounter
	MediaIndex handlers.MediaIndexService
	Quotes     handlers.QuoteService
}

// New builds the application router
func New(deps Dependencies) chi.Router {
	cfg := deps.Config

	r := chi.NewRouter()

	r.Use(middleware.ClientIPMiddleware(cfg.Server.TrustProxy))
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(deps.Logger))
	r.Use(middleware.RecoveryMiddleware(deps.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.MetricsMiddleware("/metrics", "/swagger"))

	var refreshMw func(http.Handler) http.Handler
	if cfg.Media.RefreshKey != "" {
		refreshMw = middleware.APIKeyMiddleware(cfg.Media.RefreshKey)
	}

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.QuoteStore, deps.Logger)
	mediaHandler := handlers.NewMediaHandler(deps.MediaIndex, deps.Logger, refreshMw)
	quoteHandler := handlers.NewQuoteHandler(deps.Quotes, deps.Logger, quoteRateLimiter(cfg.Quote))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))

		healthHandler.RegisterRoutes(r)
		mediaHandler.RegisterRoutes(r)
		quoteHandler.RegisterRoutes(r)

		r.NotFound(handlers.NotFound)
		r.MethodNotAllowed(handlers.NotFound)
	})

	r.Handle(storage.MediaMountPath+"/*", handlers.MediaFiles(cfg.Media.Dir))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

// quoteRateLimiter limits quote submissions per client IP using httprate's sliding window counter.
// Keys come from RemoteAddr, which ClientIPMiddleware has already resolved
func quoteRateLimiter(cfg config.QuoteConfig) func(http.Handler) http.Handler {
	return httprate.Limit(
		cfg.RateLimit,
		cfg.RateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(models.MessageResponse{Message: msgTooManyQuotes})
		}),
	)
}
