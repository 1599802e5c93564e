package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// corsMaxAge is how long browsers may cache a preflight result, in seconds
const corsMaxAge = 3600

// CORSMiddleware creates a CORS middleware with the specified allowed origins.
// "*" in the list allows any origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", APIKeyHeader, RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         corsMaxAge,
	})
}
