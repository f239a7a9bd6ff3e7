package events

import "errors"

var (
	ErrInvalidDriverID = errors.New("invalid driver id")
	ErrStatsNotFound   = errors.New("driver stats not found")
)
