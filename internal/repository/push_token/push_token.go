package push_token

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/service/pushtoken"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Upsert токен уникален, повторная регистрация переносит его к новому владельцу.
func (r *Repository) Upsert(ctx context.Context, token entities.PushToken) (*entities.PushToken, error) {
	query := `
		INSERT INTO push_tokens (token, owner_kind, owner_id, device_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE SET
			owner_kind = EXCLUDED.owner_kind,
			owner_id = EXCLUDED.owner_id,
			device_type = EXCLUDED.device_type
		RETURNING token, owner_kind, owner_id, device_type, created_at
	`

	var model PushTokenDB
	err := r.querier.QueryRow(
		ctx,
		query,
		token.Token,
		token.Owner.Kind.String(),
		token.Owner.ID,
		token.DeviceType.String(),
	).Scan(
		&model.Token,
		&model.OwnerKind,
		&model.OwnerID,
		&model.DeviceType,
		&model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected push token repository upsert error: %w", err)
	}

	return ToDomain(&model), nil
}

func (r *Repository) Delete(ctx context.Context, owner entities.PushTarget, token string) error {
	query := `
		DELETE FROM push_tokens WHERE token = $1 AND owner_kind = $2 AND owner_id = $3
	`
	result, err := r.querier.Exec(ctx, query, token, owner.Kind.String(), owner.ID)
	if err != nil {
		return fmt.Errorf("unexpected push token repository delete error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return pushtoken.ErrTokenNotFound
	}
	return nil
}

func (r *Repository) ListByOwner(ctx context.Context, owner entities.PushTarget) ([]entities.PushToken, error) {
	query := `
		SELECT token, owner_kind, owner_id, device_type, created_at
		FROM push_tokens
		WHERE owner_kind = $1 AND owner_id = $2
		ORDER BY created_at
	`

	rows, err := r.querier.Query(ctx, query, owner.Kind.String(), owner.ID)
	if err != nil {
		return nil, fmt.Errorf("unexpected push token repository list error: %w", err)
	}
	defer rows.Close()

	models := make([]PushTokenDB, 0, 2)
	for rows.Next() {
		var model PushTokenDB
		err := rows.Scan(
			&model.Token,
			&model.OwnerKind,
			&model.OwnerID,
			&model.DeviceType,
			&model.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected push token repository list error: %w", err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected push token repository list error: %w", err)
	}

	return ToDomainList(models), nil
}

// DeleteTokens удаляет токены, которые провайдер пушей признал недействительными.
func (r *Repository) DeleteTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	result, err := r.querier.Exec(ctx, `DELETE FROM push_tokens WHERE token = ANY($1)`, tokens)
	if err != nil {
		return 0, fmt.Errorf("unexpected push token repository delete tokens error: %w", err)
	}
	return result.RowsAffected(), nil
}
