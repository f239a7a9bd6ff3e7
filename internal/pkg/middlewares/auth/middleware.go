package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
	"github.com/golang-jwt/jwt/v4"
)

type ctxKey struct{}

// Authenticator проверяет bearer-токены HS256 общим секретом.
// Сервис токены не выпускает.
type Authenticator struct {
	log    handlerLogger
	secret []byte
	parser *jwt.Parser
}

func New(log handlerLogger, secret string) *Authenticator {
	return &Authenticator{
		log:    log.With(logger.NewField("component", "auth")),
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Middleware кладёт Actor в контекст запроса или отвечает 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			a.log.Warn("unauthorized request",
				logger.Err(err),
				logger.NewField("path", r.URL.Path),
			)
			writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided or are invalid.")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func (a *Authenticator) Authenticate(header string) (entities.Actor, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return entities.Actor{}, ErrMissingToken
	}

	var claims Claims
	_, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return entities.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	role := entities.Role(strings.ToLower(claims.Role))
	// system зарезервирован для фоновых задач
	if !role.IsValid() || role == entities.RoleSystem {
		return entities.Actor{}, ErrInvalidRole
	}
	if claims.UserID == "" {
		return entities.Actor{}, fmt.Errorf("%w: empty user_id", ErrInvalidToken)
	}

	return entities.Actor{ID: string(claims.UserID), Role: role}, nil
}

// RequireRoles отвечает 403, если роли актора нет в списке.
func RequireRoles(roles ...entities.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided or are invalid.")
				return
			}
			if !slices.Contains(roles, actor.Role) {
				writeError(w, http.StatusForbidden, "You do not have permission to perform this action.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

func ActorFromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(entities.Actor)
	return actor, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
