package pushtoken

import (
	"context"
	"fmt"
	"strings"

	"dispatch/internal/entities"
)

const maxTokenLen = 4096

type Service struct {
	repository Repository
}

func New(repository Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// Register привязывает токен к владельцу. Токен, уже принадлежащий другому, перепривязывается.
func (s *Service) Register(ctx context.Context, token entities.PushToken) (*entities.PushToken, error) {
	token.Token = strings.TrimSpace(token.Token)
	if err := validateOwner(token.Owner); err != nil {
		return nil, err
	}
	if token.Token == "" || len(token.Token) > maxTokenLen {
		return nil, ErrInvalidToken
	}
	if token.DeviceType == "" {
		token.DeviceType = entities.DeviceWeb
	}
	if !token.DeviceType.IsValid() {
		return nil, ErrInvalidDeviceType
	}

	saved, err := s.repository.Upsert(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("upsert push token: %w", err)
	}
	return saved, nil
}

func (s *Service) Unregister(ctx context.Context, owner entities.PushTarget, token string) error {
	token = strings.TrimSpace(token)
	if err := validateOwner(owner); err != nil {
		return err
	}
	if token == "" {
		return ErrInvalidToken
	}

	if err := s.repository.Delete(ctx, owner, token); err != nil {
		return fmt.Errorf("delete push token: %w", err)
	}
	return nil
}

func validateOwner(owner entities.PushTarget) error {
	if strings.TrimSpace(owner.ID) == "" {
		return ErrInvalidOwner
	}
	switch owner.Kind {
	case entities.PushOwnerDriver, entities.PushOwnerCustomer:
		return nil
	default:
		return ErrInvalidOwner
	}
}
