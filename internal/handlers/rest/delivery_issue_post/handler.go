package delivery_issue_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/pkg/httpresponse"
	"dispatch/internal/service/delivery"
	"dispatch/internal/service/issue"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "delivery_issue_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueReport
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		httpresponse.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	reported, err := h.service.Report(r.Context(), req.ToEntity())
	if err != nil {
		switch {
		case errors.Is(err, issue.ErrInvalidClientID),
			errors.Is(err, issue.ErrInvalidReporter),
			errors.Is(err, issue.ErrInvalidIssueType),
			errors.Is(err, issue.ErrDescriptionTooLong):
			httpresponse.Message(w, h.log, http.StatusBadRequest, err.Error())
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			httpresponse.Message(w, h.log, http.StatusNotFound, err.Error())
		default:
			h.log.Error("report delivery issue", logger.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	httpresponse.JSON(w, h.log, http.StatusCreated, dto.FromIssue(*reported))
}
