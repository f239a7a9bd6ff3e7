package order_get

import (
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/entities"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_get"))

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	found, err := h.service.GetByClientID(r.Context(), mux.Vars(r)["client_id"])
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, delivery.ErrValidation):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.Error("get delivery", logger.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	if !visible(actor, found) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	res, err := dto.FromDelivery(*found)
	if err != nil {
		h.log.Error("convert delivery", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, res)
}

// visible водитель видит свои заказы и те, что ждут водителя.
func visible(actor entities.Actor, d *entities.Delivery) bool {
	if actor.Role != entities.RoleDriver {
		return true
	}
	if d.Status == entities.StatusWaitingForDriver && !d.Assigned {
		return true
	}
	return d.DriverID != nil && *d.DriverID == actor.ID
}
