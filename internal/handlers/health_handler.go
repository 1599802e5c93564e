package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stilessandgravel/backend/internal/models"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// DatabasePinger is the interface that wraps the PingContext method. *sql.DB satisfies it.
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// QuoteCounter is the interface that wraps the Count method
type QuoteCounter interface {
	// Method Count returns the number of stored quote requests
	Count(ctx context.Context) (int, error)
}

// HealthHandler reports whether the process and its database are usable
type HealthHandler struct {
	BaseHandler
	db     DatabasePinger
	quotes QuoteCounter
	now    func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db DatabasePinger, quotes QuoteCounter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: BaseHandler{logger: logger},
		db:          db,
		quotes:      quotes,
		now:         time.Now,
	}
}

// RegisterRoutes registers all health handler routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health handles GET /api/health
// @Summary Health check
// @Description Report process health, database reachability and the stored quote request count
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := models.HealthResponse{
		Status:   "ok",
		Time:     h.now().UTC(),
		Database: "ok",
	}
	status := http.StatusOK

	if err := h.check(ctx, &resp); err != nil {
		resp.Status = "degraded"
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}

	h.respondJSON(w, status, resp)
}

// check pings the database and then counts quote requests, which also proves
// the schema is migrated
func (h *HealthHandler) check(ctx context.Context, resp *models.HealthResponse) error {
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		return err
	}

	count, err := h.quotes.Count(ctx)
	if err != nil {
		h.logger.Warn("quote request count failed", zap.Error(err))
		return err
	}
	resp.QuoteRequests = &count
	return nil
}
