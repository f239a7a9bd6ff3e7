package delivery_cancel_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
	"github.com/google/uuid"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "delivery_cancel_post"))

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

	var req dto.DeliveryCancel
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	uid, err := uuid.Parse(strings.TrimSpace(req.UID))
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid uid")
		return
	}

	canceled, err := h.service.Cancel(r.Context(), uid, req.Reason, actor)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrValidation):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			httpresponse.Message(w, h.log, http.StatusNotFound, err.Error())
		case errors.Is(err, delivery.ErrForbidden):
			httpresponse.Message(w, h.log, http.StatusForbidden, err.Error())
		case errors.Is(err, delivery.ErrInvalidTransition),
			errors.Is(err, delivery.ErrConcurrentUpdate):
			httpresponse.Message(w, h.log, http.StatusConflict, err.Error())
		default:
			h.log.Error("cancel delivery", logger.Err(err), logger.NewField("uid", uid.String()))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	res, err := dto.FromDelivery(*canceled)
	if err != nil {
		h.log.Error("convert delivery", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpresponse.JSON(w, h.log, http.StatusOK, res)
}
