package middleware

import (
	"net/http"
	"time"

	"openpilotlog/logbook/internal/auth"
	"openpilotlog/logbook/internal/logging"
)

// Logging writes one structured line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.WithRequest(auth.GetRequestID(r.Context()), r.Method, r.URL.Path)
		log.Debugw("Request received", "remote_addr", r.RemoteAddr)

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(wrapped, r)

		fields := []interface{}{
			"status_code", wrapped.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			fields = append(fields, "user_id", claims.UserID())
		}

		switch {
		case wrapped.statusCode >= 500:
			log.Errorw("HTTP request completed", fields...)
		case wrapped.statusCode >= 400:
			log.Warnw("HTTP request completed", fields...)
		default:
			log.Infow("HTTP request completed", fields...)
		}
	})
}
