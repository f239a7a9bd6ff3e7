package push_token_delete

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/handlers/rest/push_token_post"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/pushtoken"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "push_token_delete"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req dto.PushTokenUnregister
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.service.Unregister(r.Context(), push_token_post.OwnerOf(actor), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, pushtoken.ErrInvalidToken),
			errors.Is(err, pushtoken.ErrInvalidOwner):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, pushtoken.ErrTokenNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.Error("unregister push token", logger.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
