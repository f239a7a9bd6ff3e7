package ping_get

import (
	"net/http"
	"time"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/pkg/logger"
)

type Handler struct {
	log handlerLogger
	now func() time.Time
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log.With(logger.NewField("handler", "ping_get")),
		now: time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	message := "pong"
	res := dto.PingResponse{
		Message:    &message,
		ServerTime: h.now().UTC(),
	}

	httpresponse.JSON(w, h.log, http.StatusOK, res)
}
