package push_token

import "dispatch/internal/entities"

func ToDomain(t *PushTokenDB) *entities.PushToken {
	if t == nil {
		return nil
	}
	return &entities.PushToken{
		Owner: entities.PushTarget{
			Kind: entities.PushOwnerKind(t.OwnerKind),
			ID:   t.OwnerID,
		},
		Token:      t.Token,
		DeviceType: entities.DeviceType(t.DeviceType),
		CreatedAt:  t.CreatedAt,
	}
}

func ToDomainList(models []PushTokenDB) []entities.PushToken {
	result := make([]entities.PushToken, 0, len(models))
	for i := range models {
		result = append(result, *ToDomain(&models[i]))
	}
	return result
}
