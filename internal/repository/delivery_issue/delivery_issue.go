package delivery_issue

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/delivery"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, issue entities.DeliveryIssue) (*entities.DeliveryIssue, error) {
	query := `
		INSERT INTO delivery_issues (delivery_id, reported_by, issue_type, description, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, delivery_id, reported_by, issue_type, description, image, created_at
	`

	var (
		created    entities.DeliveryIssue
		reportedBy string
		issueType  string
	)
	err := r.querier.QueryRow(
		ctx,
		query,
		issue.DeliveryID,
		string(issue.ReportedBy),
		string(issue.IssueType),
		issue.Description,
		issue.Image,
	).Scan(
		&created.ID,
		&created.DeliveryID,
		&reportedBy,
		&issueType,
		&created.Description,
		&created.Image,
		&created.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery issue repository create error: %w", err)
	}

	created.ReportedBy = entities.IssueReporter(reportedBy)
	created.IssueType = entities.IssueType(issueType)
	return &created, nil
}
