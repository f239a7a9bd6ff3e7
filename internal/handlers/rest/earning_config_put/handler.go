package earning_config_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/service/earning"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "earning_config_put"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.EarningConfigUpdate
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := h.service.UpdateConfig(r.Context(), req.ToEntity())
	if err != nil {
		if errors.Is(err, earning.ErrInvalidConfig) {
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("update earning config", logger.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.Info("earning config updated")
	httpresponse.JSON(w, h.log, http.StatusOK, dto.FromEarningConfig(*cfg))
}
