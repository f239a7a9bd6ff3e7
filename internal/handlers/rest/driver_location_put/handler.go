package driver_location_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/entities"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "driver_location_put"))

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

	var req dto.DriverLocation
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.Latitude == nil || req.Longitude == nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	point := entities.Point{Lat: *req.Latitude, Lng: *req.Longitude}
	err = h.service.UpdateLocation(r.Context(), actor.ID, point)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrInvalidPoint),
			errors.Is(err, dispatch.ErrInvalidDriverID):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("update driver location", logger.Err(err), logger.NewField("driver_id", actor.ID))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
