package http

import (
	"net/http"
	"time"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/logging"
	"github.com/example/reserva/internal/server/auth"
	"github.com/example/reserva/internal/server/models"
)

// RequireToken verifies the x-access-token header and stores the claims in
// the request context. Requests without a valid token never reach the handler.
func RequireToken(secretKey []byte, logger logging.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(common.AccessTokenHeaderName)
			if token == "" {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, "token ausente")
				return
			}

			claims, err := auth.ParseToken(token, secretKey)
			if err != nil {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, "token inválido ou expirado")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireManager refuses callers whose token does not carry the manager role.
// It must run after RequireToken.
func RequireManager(logger logging.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != models.RoleManager {
				responder.writeError(r.Context(), w, http.StatusForbidden, "permissão negada")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request with method, path and duration.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info(r.Context(), "request handled",
				"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}
