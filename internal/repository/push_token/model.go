package push_token

import "time"

type PushTokenDB struct {
	Token      string
	OwnerKind  string
	OwnerID    string
	DeviceType string
	CreatedAt  time.Time
}
