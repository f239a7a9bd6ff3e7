package pushtoken

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid push token")
	ErrInvalidDeviceType = errors.New("invalid device type")
	ErrInvalidOwner      = errors.New("invalid token owner")
	ErrTokenNotFound     = errors.New("push token not found")
)
