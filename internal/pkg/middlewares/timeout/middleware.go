package timeout

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Middleware ограничивает время обработки запроса.
// routes задает собственный бюджет для шаблонов путей, например для
// маршрутов с геокодированием, которые ходят во внешний провайдер.
func Middleware(timeout time.Duration, routes map[string]time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			budget := timeout
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					if override, ok := routes[template]; ok {
						budget = override
					}
				}
			}

			// r.Context() = ongoingCtx (из BaseContext)
			ctx, cancel := context.WithTimeout(r.Context(), budget)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
