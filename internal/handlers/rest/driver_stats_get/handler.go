package driver_stats_get

import (
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/events"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "driver_stats_get"))

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

	stats, err := h.service.GetDriverStats(r.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, events.ErrInvalidDriverID) {
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("get driver stats", logger.Err(err), logger.NewField("driver_id", actor.ID))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, dto.FromDriverStats(*stats))
}
