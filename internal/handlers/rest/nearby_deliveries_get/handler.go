package nearby_deliveries_get

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/dto"
	"dispatch/internal/entities"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
)

var errBadQuery = errors.New("lat and lng must be numbers and go together")

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "nearby_deliveries_get"))

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

	query, err := parseQuery(r, actor.ID)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	nearby, err := h.service.ListNearby(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrDriverLocationUnknown):
			httpresponse.Message(w, h.log, http.StatusBadRequest, "driver location unknown, send lat and lng")
		case errors.Is(err, dispatch.ErrInvalidPoint),
			errors.Is(err, dispatch.ErrInvalidRadius),
			errors.Is(err, dispatch.ErrInvalidDriverID):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("list nearby deliveries", logger.Err(err), logger.NewField("driver_id", actor.ID))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	res, err := dto.FromNearby(nearby)
	if err != nil {
		h.log.Error("convert deliveries", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, res)
}

func parseQuery(r *http.Request, driverID string) (entities.NearbyQuery, error) {
	values := r.URL.Query()
	query := entities.NearbyQuery{DriverID: driverID}

	if raw := values.Get("radius_km"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return entities.NearbyQuery{}, dispatch.ErrInvalidRadius
		}
		query.RadiusKm = radius
	}

	rawLat, rawLng := values.Get("lat"), values.Get("lng")
	if rawLat == "" && rawLng == "" {
		return query, nil
	}

	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lng, errLng := strconv.ParseFloat(rawLng, 64)
	if errLat != nil || errLng != nil {
		return entities.NearbyQuery{}, errBadQuery
	}
	query.Point = &entities.Point{Lat: lat, Lng: lng}

	return query, nil
}
