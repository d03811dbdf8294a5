package middleware

import (
	"crypto/subtle"
	"net/http"

	"utm-dashboard/pkg/logging"
)

const apiKeyHeader = "X-Api-Key"

// APIKeyAuth gates the dashboard API behind a single operator key. An
// empty configured key disables the check, for local development only.
type APIKeyAuth struct {
	key    string
	logger *logging.ZapLogger
}

func NewAPIKeyAuth(key string, logger *logging.ZapLogger) *APIKeyAuth {
	return &APIKeyAuth{
		key:    key,
		logger: logger,
	}
}

func (a *APIKeyAuth) CreateHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.key != "" {
			provided := r.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(a.key)) != 1 {
				a.logger.DebugCtx(r.Context(), "rejected request with bad api key")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
