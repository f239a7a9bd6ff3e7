package push_token_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/entities"
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
	handlerLog := log.With(logger.NewField("handler", "push_token_post"))

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

	var req dto.PushTokenRegister
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	registered, err := h.service.Register(r.Context(), entities.PushToken{
		Owner:      OwnerOf(actor),
		Token:      req.Token,
		DeviceType: entities.DeviceType(req.DeviceType),
	})
	if err != nil {
		switch {
		case errors.Is(err, pushtoken.ErrInvalidToken),
			errors.Is(err, pushtoken.ErrInvalidDeviceType),
			errors.Is(err, pushtoken.ErrInvalidOwner):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("register push token", logger.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusCreated, dto.FromPushToken(*registered))
}

// OwnerOf токены водителя привязаны к водителю, остальные роли к покупателю платформы.
func OwnerOf(actor entities.Actor) entities.PushTarget {
	if actor.Role == entities.RoleDriver {
		return entities.PushTarget{Kind: entities.PushOwnerDriver, ID: actor.ID}
	}
	return entities.PushTarget{Kind: entities.PushOwnerCustomer, ID: actor.ID}
}
