package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stilessandgravel/backend/internal/middleware"
	"github.com/stilessandgravel/backend/internal/models"
	"github.com/stilessandgravel/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockQuoteService is a mock implementation of QuoteService
type mockQuoteService struct {
	result     *services.SubmitResult
	err        error
	submission *models.QuoteSubmission
	clientIP   string
}

func (m *mockQuoteService) Submit(ctx context.Context, submission *models.QuoteSubmission, clientIP string) (*services.SubmitResult, error) {
	m.submission = submission
	m.clientIP = clientIP
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func setupQuoteRouter(svc QuoteService) chi.Router {
	r := chi.NewRouter()
	NewQuoteHandler(svc, zap.NewNop(), nil).RegisterRoutes(r)
	return r
}

func TestQuoteHandler_Submit(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		contentType    string
		result         *services.SubmitResult
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "stored",
			body:           `{"name":"Jane","phone":"555-0100"}`,
			contentType:    "application/json",
			result:         &services.SubmitResult{QuoteID: 42},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"success":true,"quoteId":42}`,
		},
		{
			name:           "discarded",
			body:           `{"name":"Bot","phone":"1","website":"http://spam"}`,
			contentType:    "application/json",
			result:         &services.SubmitResult{Discarded: true},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true}`,
		},
		{
			name:        "validation error",
			body:        `{"phone":"555"}`,
			contentType: "application/json",
			err: &services.ValidationError{Issues: []models.FieldIssue{
				{Field: "name", Message: "Name is required"},
			}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Validation failed","issues":[{"field":"name","message":"Name is required"}]}`,
		},
		{
			name:           "captcha required",
			body:           `{"name":"Jane","phone":"555"}`,
			contentType:    "application/json",
			err:            services.ErrCaptchaRequired,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Captcha verification is required."}`,
		},
		{
			name:           "captcha failed",
			body:           `{"name":"Jane","phone":"555","turnstileToken":"bad"}`,
			contentType:    "application/json",
			err:            services.ErrCaptchaFailed,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Captcha verification failed."}`,
		},
		{
			name:           "storage failure",
			body:           `{"name":"Jane","phone":"555"}`,
			contentType:    "application/json",
			err:            errors.New("failed to store quote request: disk full"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Unexpected server error"}`,
		},
		{
			name:           "malformed json",
			body:           `{"name":`,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
		{
			name:           "body is not an object",
			body:           `["Jane","555"]`,
			contentType:    "application/json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockQuoteService{result: tt.result, err: tt.err}
			req := httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			setupQuoteRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestQuoteHandler_Submit_DecodesJSON(t *testing.T) {
	svc := &mockQuoteService{result: &services.SubmitResult{QuoteID: 1}}
	body := `{"name":"Jane","phone":"555-0100","materialNeeded":"Fill Dirt","quantityYards":"10","turnstileToken":"tok"}`
	req := httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:51234"

	setupQuoteRouter(svc).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, svc.submission)
	assert.Equal(t, "Jane", svc.submission.Name)
	assert.Equal(t, "555-0100", svc.submission.Phone)
	assert.Equal(t, "Fill Dirt", svc.submission.MaterialNeeded)
	assert.Equal(t, "10", svc.submission.QuantityYards)
	assert.Equal(t, "tok", svc.submission.TurnstileToken)
	assert.Equal(t, "203.0.113.9", svc.clientIP)
}

func TestQuoteHandler_Submit_WrongFieldTypes(t *testing.T) {
	svc := &mockQuoteService{err: &services.ValidationError{Issues: []models.FieldIssue{
		{Field: "name", Message: "Expected string"},
	}}}
	body := `{"name":123,"phone":"555-0100","email":null,"city":["Battle Creek"],"notes":"gravel","extra":5}`
	req := httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	setupQuoteRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, svc.submission)
	assert.Empty(t, svc.submission.Name)
	assert.Equal(t, "555-0100", svc.submission.Phone)
	assert.Equal(t, "gravel", svc.submission.Notes)
	assert.ElementsMatch(t, []models.FieldIssue{
		{Field: "name", Message: "Expected string"},
		{Field: "email", Message: "Expected string"},
		{Field: "city", Message: "Expected string"},
	}, svc.submission.TypeIssues)
}

func TestQuoteHandler_Submit_DecodesForm(t *testing.T) {
	svc := &mockQuoteService{result: &services.SubmitResult{QuoteID: 7}}
	form := url.Values{
		"name":                  {"Jane"},
		"phone":                 {"555-0100"},
		"preferredDeliveryDate": {"2026-11-02"},
		"website":               {""},
	}
	req := httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	w := httptest.NewRecorder()

	setupQuoteRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.submission)
	assert.Equal(t, "Jane", svc.submission.Name)
	assert.Equal(t, "555-0100", svc.submission.Phone)
	assert.Equal(t, "2026-11-02", svc.submission.PreferredDeliveryDate)
	assert.Empty(t, svc.submission.Email)
}

func TestQuoteHandler_Submit_EmptyBody(t *testing.T) {
	svc := &mockQuoteService{err: &services.ValidationError{Issues: []models.FieldIssue{
		{Field: "name", Message: "Name is required"},
		{Field: "phone", Message: "Phone is required"},
	}}}
	req := httptest.NewRequest(http.MethodPost, "/quote-request", http.NoBody)
	w := httptest.NewRecorder()

	setupQuoteRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, svc.submission)
	assert.Equal(t, models.QuoteSubmission{}, *svc.submission)

	var resp models.ValidationFailedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Len(t, resp.Issues, 2)
}

func TestQuoteHandler_Submit_BodyTooLarge(t *testing.T) {
	svc := &mockQuoteService{result: &services.SubmitResult{QuoteID: 1}}
	r := chi.NewRouter()
	r.Use(middleware.RequestSizeLimitMiddleware(32))
	NewQuoteHandler(svc, zap.NewNop(), nil).RegisterRoutes(r)

	body := `{"name":"` + strings.Repeat("a", 64) + `","phone":"555"}`
	req := httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader(body))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"message":"Request body too large"}`, w.Body.String())
	assert.Nil(t, svc.submission)
}

func TestQuoteHandler_RateLimitMiddleware(t *testing.T) {
	blocked := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	svc := &mockQuoteService{result: &services.SubmitResult{QuoteID: 1}}
	r := chi.NewRouter()
	NewQuoteHandler(svc, zap.NewNop(), blocked).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Nil(t, svc.submission)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		expected   string
	}{
		{name: "ipv4 with port", remoteAddr: "192.0.2.1:1234", expected: "192.0.2.1"},
		{name: "ipv6 with port", remoteAddr: "[2001:db8::1]:443", expected: "2001:db8::1"},
		{name: "bare address", remoteAddr: "192.0.2.1", expected: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = tt.remoteAddr

			assert.Equal(t, tt.expected, clientIP(req))
		})
	}
}
