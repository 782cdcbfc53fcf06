package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// contextKey is a private type so context values cannot collide
type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDHeader is the header request ids travel in, both directions
const RequestIDHeader = "X-Request-ID"

// GetRequestID extracts the request id from a request's context
func GetRequestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// sanitizeRequestID strips anything outside the safe id alphabet so a client
// supplied header cannot smuggle control characters into logs.
func sanitizeRequestID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, c := range id {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// RequestID tags every request with a unique id. A sanitized client-provided
// X-Request-ID is honored so ids can flow through callers; otherwise a fresh
// UUID is generated. The id is echoed back on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sanitizeRequestID(r.Header.Get(RequestIDHeader))
			if id == "" || len(id) > 64 {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
