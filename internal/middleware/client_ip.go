package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ForwardedForHeader carries the client chain appended by reverse proxies
const ForwardedForHeader = "X-Forwarded-For"

// ClientIPMiddleware sets RemoteAddr to the client address reported by the one
// trusted reverse proxy in front of the server.
//
// Only the right-most X-Forwarded-For entry is used since everything to its left
// is supplied by the client. X-Real-IP and True-Client-IP are ignored.
// With trustProxy false the middleware is a no-op.
func ClientIPMiddleware(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !trustProxy {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := lastForwardedFor(r.Header.Values(ForwardedForHeader)); ip != "" {
				r.RemoteAddr = ip
			}
			next.ServeHTTP(w, r)
		})
	}
}

// lastForwardedFor returns the right-most address across all X-Forwarded-For
// lines, or "" when it is missing or not an IP
func lastForwardedFor(values []string) string {
	for i := len(values) - 1; i >= 0; i-- {
		entries := strings.Split(values[i], ",")
		for j := len(entries) - 1; j >= 0; j-- {
			entry := strings.TrimSpace(entries[j])
			if entry == "" {
				continue
			}
			if net.ParseIP(entry) == nil {
				return ""
			}
			return entry
		}
	}
	return ""
}
