package delivery_accept_post

import (
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

// NotAvailableMessage ответ проигравшему в гонке claim, его ждут клиенты водителей.
const NotAvailableMessage = "Order is not available."

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "delivery_accept_post"))

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

	clientID := mux.Vars(r)["client_id"]

	claimed, err := h.service.ClaimByClientID(r.Context(), clientID, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrAlreadyClaimed),
			errors.Is(err, delivery.ErrNotClaimable):
			httpresponse.Message(w, h.log, http.StatusBadRequest, NotAvailableMessage)
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			httpresponse.Message(w, h.log, http.StatusNotFound, err.Error())
		case errors.Is(err, delivery.ErrValidation):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		default:
			h.log.Error("claim delivery",
				logger.Err(err),
				logger.NewField("client_id", clientID),
				logger.NewField("driver_id", actor.ID),
			)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	res, err := dto.FromDelivery(*claimed)
	if err != nil {
		h.log.Error("convert delivery", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, res)
}
