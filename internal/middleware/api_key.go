package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader is the header checked by APIKeyMiddleware
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware validates the API key from the X-API-Key header
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get(APIKeyHeader)

			if providedKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				writeMessage(w, http.StatusUnauthorized, "Invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
