package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stilessandgravel/backend/internal/models"
	"github.com/stilessandgravel/backend/internal/services"
	"go.uber.org/zap"
)

const (
	msgValidationFailed = "Validation failed"
	msgInvalidBody      = "Invalid request body"
	msgBodyTooLarge     = "Request body too large"
	msgCaptchaRequired  = "Captcha verification is required."
	msgCaptchaFailed    = "Captcha verification failed."
	msgExpectedString   = "Expected string"
)

// QuoteService is the interface that wraps the quote intake business logic.
type QuoteService interface {
	// Method Submit validates and stores a quote request and notifies the operator.
	//
	// "clientIP" is forwarded to challenge verification.
	// Client faults are reported as *services.ValidationError, services.ErrCaptchaRequired or services.ErrCaptchaFailed.
	// Any other error is a system fault. A discarded submission returns a result with Discarded set and no error.
	Submit(ctx context.Context, submission *models.QuoteSubmission, clientIP string) (*services.SubmitResult, error)
}

// QuoteHandler handles HTTP requests for quote intake
type QuoteHandler struct {
	BaseHandler
	service     QuoteService
	rateLimitMw func(http.Handler) http.Handler
}

// NewQuoteHandler creates a new quote handler.
//
// "rateLimitMw" runs before the body is decoded; pass nil to disable rate limiting.
func NewQuoteHandler(svc QuoteService, logger *zap.Logger, rateLimitMw func(http.Handler) http.Handler) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
		rateLimitMw: rateLimitMw,
	}
}

// RegisterRoutes registers all quote handler routes
func (h *QuoteHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.rateLimitMw != nil {
			r.Use(h.rateLimitMw)
		}
		r.Post("/quote-request", h.Submit)
	})
}

// Submit handles POST /api/quote-request
// @Summary Submit a quote request
// @Description Store a quote request and notify the office. Accepts JSON or URL-encoded form bodies.
// @Tags quotes
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body models.QuoteSubmission true "Quote request"
// @Success 201 {object} models.QuoteCreatedResponse
// @Success 200 {object} models.QuoteAcceptedResponse
// @Failure 400 {object} models.ValidationFailedResponse
// @Failure 413 {object} models.MessageResponse
// @Failure 429 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /quote-request [post]
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	submission, err := decodeSubmission(r)
	if err != nil {
		h.respondDecodeError(w, err)
		return
	}

	result, err := h.service.Submit(r.Context(), submission, clientIP(r))
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}

	if result.Discarded {
		h.respondJSON(w, http.StatusOK, models.QuoteAcceptedResponse{Success: true})
		return
	}

	h.respondJSON(w, http.StatusCreated, models.QuoteCreatedResponse{Success: true, QuoteID: result.QuoteID})
}

func (h *QuoteHandler) respondDecodeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		h.respondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	default:
		h.logger.Debug("failed to decode quote request body", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
	}
}

func (h *QuoteHandler) respondSubmitError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.respondJSON(w, http.StatusBadRequest, models.ValidationFailedResponse{
			Message: msgValidationFailed,
			Issues:  validationErr.Issues,
		})
	case errors.Is(err, services.ErrCaptchaRequired):
		h.respondError(w, http.StatusBadRequest, msgCaptchaRequired)
	case errors.Is(err, services.ErrCaptchaFailed):
		h.respondError(w, http.StatusBadRequest, msgCaptchaFailed)
	default:
		h.logger.Error("failed to submit quote request", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, msgUnexpectedError)
	}
}

// decodeSubmission reads a JSON or URL-encoded body. An empty body decodes to an empty submission.
//
// JSON fields holding anything but a string are recorded as type issues so
// they are reported together with the validation failures of the other fields.
func decodeSubmission(r *http.Request) (*models.QuoteSubmission, error) {
	submission := &models.QuoteSubmission{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for field, target := range formFields(submission) {
			*target = r.PostForm.Get(field)
		}
		return submission, nil
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return submission, nil
		}
		return nil, err
	}

	for field, target := range formFields(submission) {
		value, ok := raw[field]
		if !ok {
			continue
		}
		if !decodeString(value, target) {
			submission.TypeIssues = append(submission.TypeIssues, models.FieldIssue{Field: field, Message: msgExpectedString})
		}
	}
	return submission, nil
}

// decodeString unmarshals a JSON string into target. null counts as a wrong type.
func decodeString(value json.RawMessage, target *string) bool {
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return false
	}
	return json.Unmarshal(value, target) == nil
}

// formFields maps form keys to the submission fields they fill
func formFields(s *models.QuoteSubmission) map[string]*string {
	return map[string]*string{
		"name":                  &s.Name,
		"phone":                 &s.Phone,
		"email":                 &s.Email,
		"address":               &s.Address,
		"city":                  &s.City,
		"materialNeeded":        &s.MaterialNeeded,
		"quantityYards":         &s.QuantityYards,
		"preferredDeliveryDate": &s.PreferredDeliveryDate,
		"notes":                 &s.Notes,
		"website":               &s.Website,
		"turnstileToken":        &s.TurnstileToken,
	}
}

// clientIP strips the port from RemoteAddr. Proxy headers are resolved earlier by
// ClientIPMiddleware, so this is the same address the rate limiter keys on.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
