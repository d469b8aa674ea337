package middleware

import (
	"net/http"
	"strings"
	"time"

	"openpilotlog/logbook/internal/auth"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/logging"
)

// AuthMiddleware requires a valid bearer token. A nil token service disables
// authentication and every request runs with local admin claims.
func AuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokens == nil {
				ctx := auth.SetUserClaims(r.Context(), auth.LocalClaims{})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				common.RespondError(w, time.Now(), nil, constants.GetErrorMessage(constants.ErrCodeUnauthorized), http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				logging.Warn("Rejected bearer token",
					"request_id", auth.GetRequestID(r.Context()),
					"error", err,
				)
				common.RespondError(w, time.Now(), nil, constants.GetErrorMessage(constants.ErrCodeUnauthorized), http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
