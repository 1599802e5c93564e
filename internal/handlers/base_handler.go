package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/stilessandgravel/backend/internal/models"
	"go.uber.org/zap"
)

const (
	msgNotFound        = "Not found"
	msgUnexpectedError = "Unexpected server error"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends a {"message": ...} JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, models.MessageResponse{Message: message})
}

// NotFound answers unmatched API routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: msgNotFound})
}
