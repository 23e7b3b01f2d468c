package payment

import "errors"

var (
	ErrNothingToRefund  = errors.New("payment: nothing to refund")
	ErrAlreadyRefunded  = errors.New("payment: already refunded")
	ErrNotEligible      = errors.New("payment: not eligible for refund")
	ErrGateway          = errors.New("payment: gateway error")
	ErrSignature        = errors.New("payment: invalid webhook signature")
	ErrNotFound         = errors.New("payment: booking not found")
	ErrAccessDenied     = errors.New("payment: access denied")
	ErrAlreadyPaid      = errors.New("payment: already completed")
	ErrBookingCancelled = errors.New("payment: booking is cancelled")
)
