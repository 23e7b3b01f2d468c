package booking

import "errors"

var (
	ErrInvalidDateRange  = errors.New("check-in must be in the future and before check-out")
	ErrOccupancyExceeded = errors.New("maximum occupancy exceeded")
	ErrNotCancellable    = errors.New("booking cannot be cancelled")
	ErrCheckInWindow     = errors.New("check-in not allowed at this time")
	ErrInvalidTransition = errors.New("invalid booking state transition")
	ErrNotFound          = errors.New("booking not found")
	ErrAccessDenied      = errors.New("access denied")
)
