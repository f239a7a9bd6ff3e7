package check_address_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/service/delivery"
	"dispatch/internal/service/geo"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "check_address_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckAddress
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.service.Quote(r.Context(), req.ToEntity())
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrValidation),
			errors.Is(err, geo.ErrUnknownProvider),
			errors.Is(err, geo.ErrEmptyAddress):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, delivery.ErrAddressUnreachable),
			errors.Is(err, geo.ErrAddressNotFound):
			httpresponse.Message(w, h.log, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, geo.ErrGeoUnavailable):
			httpresponse.Message(w, h.log, http.StatusServiceUnavailable, "geo provider unavailable, retry later")
		default:
			h.log.Error("quote delivery", logger.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, dto.FromQuote(*quote))
}
