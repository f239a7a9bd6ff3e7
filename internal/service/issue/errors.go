package issue

import "errors"

var (
	ErrInvalidReporter    = errors.New("invalid reporter")
	ErrInvalidIssueType   = errors.New("invalid issue type")
	ErrInvalidClientID    = errors.New("invalid client id")
	ErrDescriptionTooLong = errors.New("description is too long")
)
