package middleware

import (
	"net/http"
)

// DefaultMaxRequestSize caps form and JSON bodies
const DefaultMaxRequestSize = 1 << 20 // 1MB

// RequestSizeLimitMiddleware limits the size of request bodies
func RequestSizeLimitMiddleware(maxRequestSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}
