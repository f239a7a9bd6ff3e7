package driver_orders_get

import (
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "driver_orders_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP завершённые и закрытые доставки водителя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	list, err := h.service.ListDriverDeliveries(r.Context(), actor.ID, false)
	if err != nil {
		if errors.Is(err, delivery.ErrValidation) {
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("list driver deliveries", logger.Err(err), logger.NewField("driver_id", actor.ID))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	res, err := dto.FromDeliveries(list)
	if err != nil {
		h.log.Error("convert deliveries", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, res)
}
