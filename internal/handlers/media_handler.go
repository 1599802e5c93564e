package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stilessandgravel/backend/internal/models"
	"go.uber.org/zap"
)

// MediaIndexService is the interface that wraps access to the cached media index
type MediaIndexService interface {
	// Method Get returns the current media index, rebuilding it first when it is missing or stale.
	//
	// The returned index must be treated as read-only: it is shared between concurrent requests.
	Get() *models.MediaIndex
	// Method Refresh rebuilds the media index unconditionally and returns the new snapshot.
	Refresh() *models.MediaIndex
}

// MediaHandler handles HTTP requests for the media index
type MediaHandler struct {
	BaseHandler
	index     MediaIndexService
	refreshMw func(http.Handler) http.Handler
}

// NewMediaHandler creates a new media handler.
//
// "refreshMw" guards the refresh endpoint; pass nil to leave it open.
func NewMediaHandler(index MediaIndexService, logger *zap.Logger, refreshMw func(http.Handler) http.Handler) *MediaHandler {
	return &MediaHandler{
		BaseHandler: BaseHandler{logger: logger},
		index:       index,
		refreshMw:   refreshMw,
	}
}

// RegisterRoutes registers all media handler routes
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/media", h.GetIndex)
	r.Group(func(r chi.Router) {
		if h.refreshMw != nil {
			r.Use(h.refreshMw)
		}
		r.Post("/media/refresh", h.RefreshIndex)
	})
}

// GetIndex handles GET /api/media
// @Summary Get media index
// @Description Get the categorized media catalog. The index is rebuilt when the cached copy is stale.
// @Tags media
// @Produce json
// @Success 200 {object} models.MediaIndex
// @Router /media [get]
func (h *MediaHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.index.Get())
}

// RefreshIndex handles POST /api/media/refresh
// @Summary Refresh media index
// @Description Rescan the media directory and return the new index
// @Tags media
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.MediaIndex
// @Failure 401 {object} models.MessageResponse
// @Router /media/refresh [post]
func (h *MediaHandler) RefreshIndex(w http.ResponseWriter, r *http.Request) {
	index := h.index.Refresh()
	h.logger.Info("media index refreshed on request", zap.Int("items", len(index.All)))
	h.respondJSON(w, http.StatusOK, index)
}
