package issue

import (
	"context"
	"fmt"
	"strings"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

const maxDescriptionLen = 2000

type Service struct {
	log        serviceLogger
	repository Repository
	deliveries DeliveryGetter
	sms        SMSSender
	operators  []string
}

func New(log serviceLogger, repository Repository, deliveries DeliveryGetter, sms SMSSender, operators []string) *Service {
	return &Service{
		log: log.With(
			logger.NewField("component", "issue_service"),
		),
		repository: repository,
		deliveries: deliveries,
		sms:        sms,
		operators:  operators,
	}
}

// Report сохраняет жалобу и оповещает операторов по SMS. Сбой SMS только логируется.
func (s *Service) Report(ctx context.Context, cmd entities.ReportIssue) (*entities.DeliveryIssue, error) {
	if err := validateReport(cmd); err != nil {
		return nil, err
	}

	delivery, err := s.deliveries.GetByClientID(ctx, strings.TrimSpace(cmd.ClientID))
	if err != nil {
		return nil, fmt.Errorf("find delivery: %w", err)
	}

	created, err := s.repository.Create(ctx, entities.DeliveryIssue{
		DeliveryID:  delivery.ID,
		ReportedBy:  cmd.ReportedBy,
		IssueType:   cmd.IssueType,
		Description: strings.TrimSpace(cmd.Description),
		Image:       cmd.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("create delivery issue: %w", err)
	}

	s.alert(ctx, delivery, created)
	return created, nil
}

func (s *Service) alert(ctx context.Context, delivery *entities.Delivery, issue *entities.DeliveryIssue) {
	if len(s.operators) == 0 {
		return
	}

	msg := fmt.Sprintf("Delivery issue #%d on order %s: %s reported %s. %s",
		issue.ID, delivery.ClientID, issue.ReportedBy, issue.IssueType, issue.Description)

	if err := s.sms.Send(ctx, s.operators, strings.TrimSpace(msg)); err != nil {
		s.log.Warn("send issue sms alert",
			logger.Err(err),
			logger.NewField("issue_id", issue.ID),
		)
	}
}

func validateReport(cmd entities.ReportIssue) error {
	if strings.TrimSpace(cmd.ClientID) == "" {
		return ErrInvalidClientID
	}
	if !cmd.ReportedBy.IsValid() {
		return ErrInvalidReporter
	}
	if !cmd.IssueType.IsValid() {
		return ErrInvalidIssueType
	}
	if len(cmd.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}
