package admin_orders_get

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/dto"
	"dispatch/internal/entities"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "admin_orders_get"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.service.ListAll(r.Context(), filter)
	if err != nil {
		if errors.Is(err, delivery.ErrValidation) {
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("list deliveries", logger.Err(err))
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

func parseFilter(r *http.Request) (entities.DeliveryFilter, error) {
	values := r.URL.Query()
	var filter entities.DeliveryFilter

	if raw := values.Get("status"); raw != "" {
		status := entities.DeliveryStatus(raw)
		filter.Status = &status
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			return entities.DeliveryFilter{}, errors.New("limit must be a positive integer")
		}
		filter.Limit = limit
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return entities.DeliveryFilter{}, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = offset
	}

	return filter, nil
}
