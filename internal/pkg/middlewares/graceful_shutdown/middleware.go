package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"

	"dispatch/internal/pkg/httpresponse"
	"dispatch/pkg/logger"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

// Middleware отклоняет запросы, пришедшие после отмены ongoingCtx.
// Во время readiness drain флаг уже выставлен, но запросы еще обслуживаются.
// Connection: close заставляет балансировщик переоткрыть соединение на другой инстанс.
func Middleware(log errorLogger, isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ongoingCtx.Err() != nil && isShuttingDown.Load() {
				w.Header().Set("Connection", "close")
				w.Header().Set("Retry-After", "1")
				httpresponse.Message(w, log, http.StatusServiceUnavailable, "service is shutting down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
