package booking

import (
	"math"
	"time"

	"stayinn/internal/domain"
)

// Policy holds the time-based cancellation rules. The zero value is not
// usable; construct with DefaultPolicy and override fields as needed.
type Policy struct {
	// CancelCutoff is the minimum time before check-in at which a booking
	// may still be cancelled.
	CancelCutoff time.Duration
	// FullRefundCutoff is the threshold beyond which the full amount is
	// returned; between CancelCutoff and FullRefundCutoff the HalfRefundRate
	// applies.
	FullRefundCutoff time.Duration
	HalfRefundRate   float64
}

func DefaultPolicy() Policy {
	return Policy{
		CancelCutoff:     24 * time.Hour,
		FullRefundCutoff: 48 * time.Hour,
		HalfRefundRate:   0.5,
	}
}

func (p Policy) Cancellable(checkIn, now time.Time, status domain.BookingStatus) bool {
	if status != domain.BookingPending && status != domain.BookingConfirmed {
		return false
	}
	return checkIn.Sub(now) > p.CancelCutoff
}

// RefundAmount computes the refundable amount at the given moment. It is
// evaluated both at cancellation and at refund-request time.
func (p Policy) RefundAmount(checkIn, now time.Time, finalAmount int64, status domain.BookingStatus) int64 {
	if !p.Cancellable(checkIn, now, status) {
		return 0
	}
	untilCheckIn := checkIn.Sub(now)
	if untilCheckIn > p.FullRefundCutoff {
		return finalAmount
	}
	if untilCheckIn > p.CancelCutoff {
		return int64(math.Round(float64(finalAmount) * p.HalfRefundRate))
	}
	return 0
}
