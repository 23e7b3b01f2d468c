package booking

import (
	"testing"
	"time"

	"stayinn/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_RefundAmount(t *testing.T) {
	policy := DefaultPolicy()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		untilIn     time.Duration
		status      domain.BookingStatus
		finalAmount int64
		cancellable bool
		refund      int64
	}{
		{"more than 48h gets full refund", 72 * time.Hour, domain.BookingConfirmed, 1000, true, 1000},
		{"between 24h and 48h gets half", 36 * time.Hour, domain.BookingConfirmed, 1000, true, 500},
		{"half refund rounds to nearest", 36 * time.Hour, domain.BookingConfirmed, 1001, true, 501},
		{"exactly 48h is still half", 48 * time.Hour, domain.BookingPending, 1000, true, 500},
		{"under 24h is not cancellable", 10 * time.Hour, domain.BookingConfirmed, 1000, false, 0},
		{"exactly 24h is not cancellable", 24 * time.Hour, domain.BookingPending, 1000, false, 0},
		{"checked-in is never cancellable", 72 * time.Hour, domain.BookingCheckedIn, 1000, false, 0},
		{"cancelled stays terminal", 72 * time.Hour, domain.BookingCancelled, 1000, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkIn := now.Add(tt.untilIn)
			assert.Equal(t, tt.cancellable, policy.Cancellable(checkIn, now, tt.status))
			assert.Equal(t, tt.refund, policy.RefundAmount(checkIn, now, tt.finalAmount, tt.status))
		})
	}
}

func TestPolicy_CustomCutoffs(t *testing.T) {
	policy := Policy{
		CancelCutoff:     12 * time.Hour,
		FullRefundCutoff: 24 * time.Hour,
		HalfRefundRate:   0.25,
	}
	now := time.Now()

	assert.Equal(t, int64(1000), policy.RefundAmount(now.Add(30*time.Hour), now, 1000, domain.BookingPending))
	assert.Equal(t, int64(250), policy.RefundAmount(now.Add(18*time.Hour), now, 1000, domain.BookingPending))
	assert.Equal(t, int64(0), policy.RefundAmount(now.Add(6*time.Hour), now, 1000, domain.BookingPending))
}
