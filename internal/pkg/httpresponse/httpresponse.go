package httpresponse

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/dto"
	"dispatch/pkg/logger"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.Err(err))
	}
}

func Message(w http.ResponseWriter, log errorLogger, status int, message string) {
	JSON(w, log, status, dto.Message{Message: message})
}
