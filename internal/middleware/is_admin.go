package middleware

import (
	"net/http"
	"time"

	"openpilotlog/logbook/internal/auth"
	"openpilotlog/logbook/internal/common"
)

// IsAdminMiddleware only lets admin callers through. It must run after AuthMiddleware.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil || !claims.IsAdmin() {
				common.RespondError(w, time.Now(), nil, "Admin role required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
