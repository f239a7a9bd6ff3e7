package delivery

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidClientID     = fmt.Errorf("%w: invalid client id", ErrValidation)
	ErrInvalidPickup       = fmt.Errorf("%w: invalid pickup point", ErrValidation)
	ErrInvalidDropOff      = fmt.Errorf("%w: drop-off needs an address or a point", ErrValidation)
	ErrInvalidPickupWindow = fmt.Errorf("%w: pickup_last_time must not precede pickup_ready_at", ErrValidation)
	ErrInvalidAmount       = fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	ErrInvalidPaymentType  = fmt.Errorf("%w: invalid payment type", ErrValidation)
	ErrInvalidCurrency     = fmt.Errorf("%w: invalid currency", ErrValidation)
	ErrInvalidStatus       = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidDriverID     = fmt.Errorf("%w: invalid driver id", ErrValidation)
	ErrReasonRequired      = fmt.Errorf("%w: reason is required", ErrValidation)
)

var (
	ErrAddressUnreachable = errors.New("drop-off is out of delivery range")
	ErrDeliveryNotFound   = errors.New("delivery not found")
	ErrDuplicateClientID  = errors.New("delivery with this client id already exists")

	ErrAlreadyClaimed = errors.New("delivery already claimed")
	ErrNotClaimable   = errors.New("delivery is not waiting for a driver")
	ErrClaimRejected  = errors.New("conditional update matched no rows")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrProofRequired     = fmt.Errorf("%w: proof image required for delivery_success", ErrInvalidTransition)
	ErrNotAssignedDriver = errors.New("actor is not the assigned driver")
	ErrForbidden         = errors.New("actor is not allowed to perform this operation")
	ErrConcurrentUpdate  = errors.New("concurrent update, retry")
)
