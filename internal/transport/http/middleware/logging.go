package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Log records each incoming request with a generated id.
func Log(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info("incoming http request",
				zap.String("id", uuid.NewString()),
				zap.String("method", r.Method),
				zap.String("uri", r.URL.RequestURI()),
				zap.String("ip", r.RemoteAddr),
			)
			next.ServeHTTP(w, r)
		})
	}
}
