package geo

import "errors"

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrGeoUnavailable  = errors.New("geo provider unavailable")
	ErrUnknownProvider = errors.New("unknown geo provider")
	ErrEmptyAddress    = errors.New("address is empty")
)
