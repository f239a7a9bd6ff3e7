package healthcheck_head

import (
	"context"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"dispatch/pkg/logger"
)

const pingTimeout = 2 * time.Second

// PingFunc адаптер для клиентов, у которых Ping не возвращает error напрямую.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Handler struct {
	log            handlerLogger
	isShuttingDown *atomic.Bool
	names          []string
	deps           map[string]Pinger
}

func New(log handlerLogger, isShuttingDown *atomic.Bool, deps map[string]Pinger) *Handler {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Handler{
		log:            log.With(logger.NewField("handler", "healthcheck_head")),
		isShuttingDown: isShuttingDown,
		names:          names,
		deps:           deps,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	for _, name := range h.names {
		if err := h.deps[name].Ping(ctx); err != nil {
			h.log.Warn("dependency is not ready",
				logger.NewField("dependency", name),
				logger.Err(err),
			)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
