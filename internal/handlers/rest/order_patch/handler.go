package order_patch

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

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
	handlerLog := log.With(logger.NewField("handler", "order_patch"))

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

	var req dto.DeliveryTransition
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	clientID := mux.Vars(r)["client_id"]
	status := entities.DeliveryStatus(strings.ToLower(strings.TrimSpace(req.Status)))

	current, err := h.service.GetByClientID(r.Context(), clientID)
	if err != nil {
		h.writeError(w, err, clientID)
		return
	}

	updated, err := h.service.Transition(r.Context(), entities.TransitionCommand{
		ID:         current.ID,
		Status:     status,
		ProofImage: req.ProofImage,
		Reason:     req.Reason,
		Actor:      actor,
	})
	if err != nil {
		h.writeError(w, err, clientID)
		return
	}

	res, err := dto.FromDelivery(*updated)
	if err != nil {
		h.log.Error("convert delivery", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, res)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, clientID string) {
	switch {
	case errors.Is(err, delivery.ErrValidation):
		httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
	case errors.Is(err, delivery.ErrDeliveryNotFound):
		httpresponse.Message(w, h.log, http.StatusNotFound, err.Error())
	case errors.Is(err, delivery.ErrNotAssignedDriver),
		errors.Is(err, delivery.ErrForbidden):
		httpresponse.Message(w, h.log, http.StatusForbidden, err.Error())
	case errors.Is(err, delivery.ErrInvalidTransition),
		errors.Is(err, delivery.ErrConcurrentUpdate):
		httpresponse.Message(w, h.log, http.StatusConflict, err.Error())
	default:
		h.log.Error("transition delivery", logger.Err(err), logger.NewField("client_id", clientID))
		w.WriteHeader(http.StatusInternalServerError)
	}
}
