package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stilessandgravel/backend/internal/config"
	"github.com/stilessandgravel/backend/internal/database"
	"github.com/stilessandgravel/backend/internal/models"
	"github.com/stilessandgravel/backend/internal/repositories"
	"github.com/stilessandgravel/backend/internal/services"
	"github.com/stilessandgravel/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	router     chi.Router
	db         *sql.DB
	remoteAddr string
	mediaDir   string
}

// setupTestApp wires the full stack against a temporary media directory and sqlite database
func setupTestApp(t *testing.T, refreshKey string, overrides ...func(*config.Config)) *testApp {
	t.Helper()

	mediaDir := t.TempDir()
	for _, name := range []string{
		"StilesSandGravel-Logo.jpg",
		"hero-quarry.jpg",
		"dump-truck-delivery.mp4",
		"dump-truck-delivery.jpg",
		"river-rock-pile.png",
		"job-site.webp",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(mediaDir, name), []byte("not really media"), 0o644))
	}

	cfg := &config.Config{
		Env:    "test",
		Server: config.ServerConfig{TrustProxy: false},
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "data", "quotes.db"),
		},
		CORS:  config.CORSConfig{AllowedOrigins: []string{"*"}},
		Media: config.MediaConfig{Dir: mediaDir, CacheTTL: time.Hour, RefreshKey: refreshKey},
		Quote: config.QuoteConfig{RateLimit: 15, RateWindow: 15 * time.Minute},
	}
	for _, override := range overrides {
		override(cfg)
	}

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db, cfg.Database.Driver))

	logger := zap.NewNop()
	mediaSvc := services.NewMediaService(storage.NewLocalStorage(mediaDir), logger)
	quoteRepo := repositories.NewQuoteRepository(db, logger)
	quoteSvc := services.NewQuoteService(quoteRepo, nil, nil, logger)

	r := New(Dependencies{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		QuoteStore: quoteRepo,
		MediaIndex: services.NewIndexCache(mediaSvc, cfg.Media.CacheTTL),
		Quotes:     quoteSvc,
	})

	return &testApp{router: r, db: db, remoteAddr: "198.51.100.7:40000", mediaDir: mediaDir}
}

func (a *testApp) do(t *testing.T, method, path, contentType, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.RemoteAddr = a.remoteAddr

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) getIndex(t *testing.T) *models.MediaIndex {
	t.Helper()

	w := a.do(t, http.MethodGet, "/api/media", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var index models.MediaIndex
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &index))
	return &index
}

func (a *testApp) quoteCount(t *testing.T) int {
	t.Helper()

	count, err := repositories.NewQuoteRepository(a.db, zap.NewNop()).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestMediaIndex_EndToEnd(t *testing.T) {
	app := setupTestApp(t, "")

	index := app.getIndex(t)

	assert.Len(t, index.All, 6)
	assert.Equal(t, len(index.Hero), index.Counts.Hero)
	assert.Equal(t, len(index.Services), index.Counts.Services)
	assert.Equal(t, len(index.Materials), index.Counts.Materials)
	assert.Equal(t, len(index.Gallery), index.Counts.Gallery)
	assert.Equal(t, len(index.All), index.Counts.Hero+index.Counts.Services+index.Counts.Materials+index.Counts.Gallery)

	seen := map[string]bool{}
	for _, bucket := range [][]*models.MediaItem{index.Hero, index.Services, index.Materials, index.Gallery} {
		for _, item := range bucket {
			assert.False(t, seen[item.ID], "item %s listed twice", item.Filename)
			seen[item.ID] = true
		}
	}
	assert.Len(t, seen, 6)

	for _, item := range index.All {
		assert.NotEqual(t, "notes.txt", item.Filename)
		if item.Filename == "dump-truck-delivery.mp4" {
			assert.Equal(t, "/media/dump-truck-delivery.jpg", item.PosterURL)
		}
	}

	again := app.getIndex(t)
	assert.Equal(t, index.GeneratedAt, again.GeneratedAt)
	assert.Equal(t, index.All, again.All)
}

func TestMediaRefresh_EndToEnd(t *testing.T) {
	app := setupTestApp(t, "")

	before := app.getIndex(t)
	require.NoError(t, os.WriteFile(filepath.Join(app.mediaDir, "new-gravel.jpg"), []byte("x"), 0o644))

	cached := app.getIndex(t)
	assert.Len(t, cached.All, len(before.All))

	w := app.do(t, http.MethodPost, "/api/media/refresh", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed models.MediaIndex
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	assert.Len(t, refreshed.All, len(before.All)+1)
	assert.False(t, refreshed.GeneratedAt.Before(before.GeneratedAt))

	after := app.getIndex(t)
	assert.Equal(t, refreshed.GeneratedAt, after.GeneratedAt)
}

func TestMediaRefresh_RequiresKey(t *testing.T) {
	app := setupTestApp(t, "refresh-secret")

	tests := []struct {
		name           string
		key            string
		expectedStatus int
	}{
		{name: "missing key", key: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong key", key: "guess", expectedStatus: http.StatusUnauthorized},
		{name: "correct key", key: "refresh-secret", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.key != "" {
				headers["X-API-Key"] = tt.key
			}

			w := app.do(t, http.MethodPost, "/api/media/refresh", "", "", headers)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/api/media", "", "", nil).Code)
}

func TestQuoteRequest_EndToEnd(t *testing.T) {
	app := setupTestApp(t, "")
	require.Equal(t, 0, app.quoteCount(t))

	w := app.do(t, http.MethodPost, "/api/quote-request", "application/json",
		`{"name":"Jane Doe","phone":"555-0100","email":"jane@example.com","materialNeeded":"Fill Dirt","quantityYards":"12"}`, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var created models.QuoteCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, 1, app.quoteCount(t))

	var name, material string
	err := app.db.QueryRow("SELECT name, material_needed FROM quote_requests WHERE id = ?", created.QuoteID).Scan(&name, &material)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "Fill Dirt", material)
}

func TestQuoteRequest_Honeypot(t *testing.T) {
	app := setupTestApp(t, "")

	w := app.do(t, http.MethodPost, "/api/quote-request", "application/json",
		`{"name":"Bot","phone":"000","website":"http://spam.example.com"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, 0, app.quoteCount(t))
}

func TestQuoteRequest_ValidationFailure(t *testing.T) {
	app := setupTestApp(t, "")

	w := app.do(t, http.MethodPost, "/api/quote-request", "application/json", `{"phone":"555-0100"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ValidationFailedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Contains(t, resp.Issues, models.FieldIssue{Field: "name", Message: "Name is required"})
	assert.Equal(t, 0, app.quoteCount(t))
}

func TestQuoteRequest_FormEncoded(t *testing.T) {
	app := setupTestApp(t, "")
	form := url.Values{"name": {"Sam"}, "phone": {"555-0111"}, "city": {"Stiles"}}

	w := app.do(t, http.MethodPost, "/api/quote-request", "application/x-www-form-urlencoded", form.Encode(), nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, app.quoteCount(t))
}

func TestQuoteRequest_RateLimited(t *testing.T) {
	app := setupTestApp(t, "")
	body := `{"name":"Jane","phone":"555-0100"}`

	for i := 0; i < 15; i++ {
		w := app.do(t, http.MethodPost, "/api/quote-request", "application/json", body, nil)
		require.Equal(t, http.StatusCreated, w.Code, "request %d", i+1)
	}

	w := app.do(t, http.MethodPost, "/api/quote-request", "application/json", body, nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too many quote requests. Please try again shortly."}`, w.Body.String())
	assert.Equal(t, 15, app.quoteCount(t))
}

func TestQuoteRequest_WrongTypeReportedWithOtherIssues(t *testing.T) {
	app := setupTestApp(t, "")
	body := fmt.Sprintf(`{"name":123,"email":"nope","notes":%q}`, strings.Repeat("x", 2500))

	w := app.do(t, http.MethodPost, "/api/quote-request", "application/json", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Validation failed","issues":[
		{"field":"name","message":"Expected string"},
		{"field":"phone","message":"Phone is required"},
		{"field":"email","message":"Invalid email address"},
		{"field":"notes","message":"Must be at most 2000 characters"}
	]}`, w.Body.String())
	assert.Equal(t, 0, app.quoteCount(t))
}

func TestQuoteRequest_RateLimitedBehindProxy(t *testing.T) {
	app := setupTestApp(t, "", func(cfg *config.Config) { cfg.Server.TrustProxy = true })
	app.remoteAddr = "203.0.113.1:443"
	body := `{"name":"Jane","phone":"555-0100"}`

	// the client controls every entry left of the one the proxy appended
	forwardedFor := func(i int) map[string]string {
		return map[string]string{"X-Forwarded-For": fmt.Sprintf("10.0.0.%d, 198.51.100.7", i)}
	}

	for i := 0; i < 15; i++ {
		w := app.do(t, http.MethodPost, "/api/quote-request", "application/json", body, forwardedFor(i))
		require.Equal(t, http.StatusCreated, w.Code, "request %d", i+1)
	}

	w := app.do(t, http.MethodPost, "/api/quote-request", "application/json", body, forwardedFor(15))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = app.do(t, http.MethodPost, "/api/quote-request", "application/json", body,
		map[string]string{"X-Forwarded-For": "198.51.100.7, 198.51.100.8"})
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, 16, app.quoteCount(t))
}

func TestHealth_EndToEnd(t *testing.T) {
	app := setupTestApp(t, "")

	w := app.do(t, http.MethodGet, "/api/health", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	require.NotNil(t, resp.QuoteRequests)
	assert.Equal(t, 0, *resp.QuoteRequests)

	w = app.do(t, http.MethodPost, "/api/quote-request", "application/json", `{"name":"Jane","phone":"555-0100"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(t, http.MethodGet, "/api/health", "", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.QuoteRequests)
	assert.Equal(t, 1, *resp.QuoteRequests)
}

func TestUnknownAPIRoute(t *testing.T) {
	app := setupTestApp(t, "")

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/api/unknown"},
		{name: "wrong method", method: http.MethodDelete, path: "/api/media"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, tt.method, tt.path, "", "", nil)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"message":"Not found"}`, w.Body.String())
		})
	}
}

func TestStaticMedia(t *testing.T) {
	app := setupTestApp(t, "")

	w := app.do(t, http.MethodGet, "/media/hero-quarry.jpg", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=604800", w.Header().Get("Cache-Control"))
	assert.Equal(t, "not really media", w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupTestApp(t, "")
	app.do(t, http.MethodGet, "/api/health", "", "", nil)

	w := app.do(t, http.MethodGet, "/metrics", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "site_http_requests_total")
}

func TestCORSHeaders(t *testing.T) {
	app := setupTestApp(t, "")

	w := app.do(t, http.MethodOptions, "/api/quote-request", "", "", map[string]string{
		"Origin":                        "https://stilessandgravel.com",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Less(t, w.Code, http.StatusMultipleChoices)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 0, app.quoteCount(t))
}
