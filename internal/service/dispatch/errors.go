package dispatch

import "errors"

var (
	ErrDriverLocationUnknown = errors.New("driver location unknown")
	ErrInvalidPoint          = errors.New("invalid coordinates")
	ErrInvalidRadius         = errors.New("invalid radius")
	ErrInvalidDriverID       = errors.New("invalid driver id")
)
