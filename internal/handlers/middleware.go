package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/schoolpay/schoolpay-gobackend/internal/response"
	"github.com/schoolpay/schoolpay-gobackend/internal/services"
	"github.com/schoolpay/schoolpay-gobackend/pkg/log"
)

type contextKey string

// ClaimsContextKey carries the decoded token claims for downstream handlers.
const ClaimsContextKey contextKey = "claims"

// AuthMiddleware rejects requests without a valid bearer token. All failure
// modes answer with the same unauthorized envelope; the underlying cause is
// only logged.
func AuthMiddleware(auth *services.AuthService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
				return
			}

			claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.GetLogger().Warn().Str("path", r.URL.Path).Msg("rejected bearer token")
				response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, response.MsgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.GetLogger().Info().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r)
	})
}
