package earning

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid earning config")
	ErrMissingActualTime = errors.New("delivery has no actual completion time")
	ErrNegativeDistance  = errors.New("distance must not be negative")
)
