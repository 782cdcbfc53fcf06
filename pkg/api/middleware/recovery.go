package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/Ashar-LUMS/boolnet/pkg/logging"
)

// Recovery turns handler panics into 500 responses instead of crashing the
// server. The stack trace goes to the log; the client sees a generic message.
func Recovery(logger logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic in handler",
						logging.String("method", r.Method),
						logging.String("path", r.URL.Path),
						logging.String("request_id", GetRequestID(r)),
						logging.Any("panic", err),
						logging.String("stack", string(debug.Stack())),
					)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
