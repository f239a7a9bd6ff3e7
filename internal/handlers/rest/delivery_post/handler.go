package delivery_post

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
	handlerLog := log.With(logger.NewField("handler", "delivery_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.DeliveryCreate
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd, err := req.ToEntity()
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrValidation),
			errors.Is(err, geo.ErrUnknownProvider),
			errors.Is(err, geo.ErrEmptyAddress):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, delivery.ErrDuplicateClientID):
			httpresponse.Message(w, h.log, http.StatusConflict, err.Error())
		case errors.Is(err, delivery.ErrAddressUnreachable),
			errors.Is(err, geo.ErrAddressNotFound):
			httpresponse.Message(w, h.log, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, geo.ErrGeoUnavailable):
			httpresponse.Message(w, h.log, http.StatusServiceUnavailable, "geo provider unavailable, retry later")
		default:
			h.log.Error("create delivery", logger.Err(err), logger.NewField("client_id", cmd.ClientID))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	res, err := dto.FromDelivery(*created)
	if err != nil {
		h.log.Error("convert delivery", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusCreated, res)
}
