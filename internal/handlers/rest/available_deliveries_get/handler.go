package available_deliveries_get

import (
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "available_deliveries_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	waiting, err := h.service.ListWaiting(r.Context())
	if err != nil {
		h.log.Error("list waiting deliveries", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	res, err := dto.FromDeliveries(waiting)
	if err != nil {
		h.log.Error("convert deliveries", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, res)
}
