package delivery_requested

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/dto"
	"dispatch/internal/service/delivery"
	"dispatch/internal/service/geo"
	"dispatch/pkg/logger"
	"github.com/IBM/sarama"
)

type Handler struct {
	service                  Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, service Service, timeout time.Duration) *Handler {
	handlerLog := log.With(logger.NewField("handler", "delivery.requested"))

	return &Handler{
		service:                  service,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("delivery.requested: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}
		case <-sess.Context().Done():
			// rebalance или остановка группы
			h.log.Info("delivery.requested: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing true означает выход из ConsumeClaim без коммита:
// сообщение придет снова после ребаланса.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var request dto.DeliveryCreate
	err := json.Unmarshal(message.Value, &request)
	if err != nil {
		h.log.Error("delivery.requested: bad message", logger.Err(err), logger.NewField("offset", message.Offset))
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("client_id", request.ClientID),
		logger.NewField("offset", message.Offset),
	)

	cmd, err := request.ToEntity()
	if err != nil {
		msgLog.Warn("delivery.requested: malformed request", logger.Err(err))
		sess.MarkMessage(message, "")
		return false
	}

	created, err := h.service.Create(ctx, cmd)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded),
			errors.Is(err, geo.ErrGeoUnavailable):
			msgLog.Warn("delivery.requested: transient failure, message will be reprocessed", logger.Err(err))
			return true
		case errors.Is(err, delivery.ErrDuplicateClientID):
			msgLog.Info("delivery.requested: duplicate, skipped")
		case errors.Is(err, delivery.ErrValidation),
			errors.Is(err, delivery.ErrAddressUnreachable),
			errors.Is(err, geo.ErrAddressNotFound),
			errors.Is(err, geo.ErrUnknownProvider),
			errors.Is(err, geo.ErrEmptyAddress):
			msgLog.Warn("delivery.requested: rejected", logger.Err(err))
		default:
			msgLog.Error("delivery.requested: failed to create delivery", logger.Err(err))
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("delivery.requested: processed",
		logger.NewField("uid", created.UID.String()),
		logger.NewField("status", created.Status.String()),
	)
	sess.MarkMessage(message, "")
	return false
}
