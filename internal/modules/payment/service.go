package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"stayinn/internal/domain"
	"stayinn/internal/modules/booking"

	"gorm.io/gorm"
)

const (
	eventIntentSucceeded = "payment_intent.succeeded"
	eventIntentFailed    = "payment_intent.payment_failed"

	EventBookingConfirmed = "booking-confirmed"
)

type BookingConfirmedEvent struct {
	Event     string `json:"event"`
	BookingID int64  `json:"booking_id"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
}

// Service reconciles booking payment state with the external gateway. Both
// delivery channels (client confirm call and webhook) funnel into
// ApplyGatewayResult, which is idempotent under the booking row lock.
type Service struct {
	bookings  BookingStore
	gateway   Gateway
	publisher Publisher
	loggerf   func(format string, args ...interface{})

	policy   booking.Policy
	currency string
}

func NewService(bookings BookingStore, gateway Gateway, publisher Publisher, currency string, policy booking.Policy, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if currency == "" {
		currency = "inr"
	}
	return &Service{
		bookings:  bookings,
		gateway:   gateway,
		publisher: publisher,
		loggerf:   loggerf,
		policy:    policy,
		currency:  currency,
	}
}

func (s *Service) CreateIntent(ctx context.Context, bookingID, userID int64) (*CreateIntentResponse, error) {
	b, err := s.getOwned(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if b.PaymentStatus == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status == domain.BookingCancelled {
		return nil, ErrBookingCancelled
	}

	intent, err := s.gateway.CreateIntent(ctx, b.Pricing.FinalAmount, s.currency, map[string]string{
		"booking_id": strconv.FormatInt(b.ID, 10),
		"reference":  b.Reference,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if _, err := s.bookings.Transition(ctx, bookingID, func(b *domain.Booking) error {
		b.Payment.GatewayIntentID = intent.ID
		return nil
	}); err != nil {
		s.loggerf("level=error msg=failed to store intent id booking_id=%d intent_id=%s err=%v", bookingID, intent.ID, err)
	}

	return &CreateIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       b.Pricing.FinalAmount,
		Currency:     s.currency,
	}, nil
}

// ApplyGatewayResult applies one payment attempt's outcome to the booking.
// A result for an intent that is already recorded as paid is a no-op, so
// the confirm call and the webhook can both deliver the same outcome in any
// order. A failed attempt only flips the payment status; the booking itself
// stays where it was and the held units are not released.
func (s *Service) ApplyGatewayResult(ctx context.Context, bookingID int64, res GatewayResult) (*domain.Booking, error) {
	var confirmed, replay bool
	updated, err := s.bookings.Transition(ctx, bookingID, func(b *domain.Booking) error {
		if b.PaymentStatus == domain.PaymentPaid && b.Payment.GatewayIntentID == res.IntentID {
			replay = true
			return nil
		}
		b.Payment.GatewayIntentID = res.IntentID
		if !res.succeeded() {
			b.PaymentStatus = domain.PaymentFailed
			return nil
		}
		b.PaymentStatus = domain.PaymentPaid
		b.Payment.PaidAmount = res.AmountPaid
		b.Payment.PaymentMethod = res.Method
		b.Payment.TransactionID = res.TransactionID
		if b.Status == domain.BookingPending {
			b.Status = domain.BookingConfirmed
			confirmed = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if replay {
		s.loggerf("level=info msg=gateway result already applied booking_id=%d intent_id=%s", bookingID, res.IntentID)
		return updated, nil
	}
	s.loggerf("level=info msg=gateway result applied booking_id=%d intent_id=%s status=%s", bookingID, res.IntentID, res.Status)

	if confirmed && s.publisher != nil {
		s.publisher.Publish(booking.HotelTopic(updated.HotelID), BookingConfirmedEvent{
			Event:     EventBookingConfirmed,
			BookingID: updated.ID,
			Reference: updated.Reference,
			Amount:    updated.Payment.PaidAmount,
		})
	}
	return updated, nil
}

// ConfirmPayment is the client channel: the caller reports an intent id and
// the authoritative state is pulled from the gateway before being applied.
func (s *Service) ConfirmPayment(ctx context.Context, bookingID, userID int64, intentID string) (*domain.Booking, error) {
	b, err := s.getOwned(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if got := intent.Metadata["booking_id"]; got != strconv.FormatInt(b.ID, 10) {
		return nil, ErrAccessDenied
	}

	return s.ApplyGatewayResult(ctx, bookingID, GatewayResult{
		IntentID:      intent.ID,
		Status:        intent.Status,
		AmountPaid:    intent.Amount,
		Method:        intent.PaymentMethod,
		TransactionID: intent.LatestCharge,
	})
}

// HandleWebhook is the gateway channel. Unknown event types are ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.gateway.VerifyWebhook(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignature, err)
	}

	switch event.Type {
	case eventIntentSucceeded, eventIntentFailed:
	default:
		s.loggerf("level=info msg=ignoring webhook event type=%s", event.Type)
		return nil
	}
	if event.Intent == nil {
		s.loggerf("level=error msg=webhook event has no intent type=%s event_id=%s", event.Type, event.ID)
		return nil
	}

	bookingID, err := strconv.ParseInt(event.Intent.Metadata["booking_id"], 10, 64)
	if err != nil {
		s.loggerf("level=error msg=webhook intent missing booking metadata intent_id=%s", event.Intent.ID)
		return nil
	}

	_, err = s.ApplyGatewayResult(ctx, bookingID, GatewayResult{
		IntentID:      event.Intent.ID,
		Status:        event.Intent.Status,
		AmountPaid:    event.Intent.Amount,
		Method:        event.Intent.PaymentMethod,
		TransactionID: event.Intent.LatestCharge,
	})
	if errors.Is(err, ErrNotFound) {
		s.loggerf("level=error msg=webhook for unknown booking booking_id=%d intent_id=%s", bookingID, event.Intent.ID)
		return nil
	}
	return err
}

// Refund issues a gateway refund for a paid booking. The refundable amount
// is evaluated against the cancellation policy at the moment of the request,
// not at cancellation. If the gateway call fails nothing is recorded.
func (s *Service) Refund(ctx context.Context, bookingID, userID int64, reason string) (*domain.Booking, int64, error) {
	b, err := s.getOwned(ctx, bookingID, userID)
	if err != nil {
		return nil, 0, err
	}
	switch b.PaymentStatus {
	case domain.PaymentPaid:
	case domain.PaymentRefunded, domain.PaymentPartialRefund:
		return nil, 0, ErrAlreadyRefunded
	default:
		return nil, 0, ErrNothingToRefund
	}

	refund := s.policy.RefundAmount(b.CheckIn, time.Now(), b.Pricing.FinalAmount, b.Status)
	if refund <= 0 {
		return nil, 0, ErrNotEligible
	}

	result, err := s.gateway.Refund(ctx, b.Payment.GatewayIntentID, refund, reason)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	s.loggerf("level=info msg=gateway refund issued booking_id=%d refund_id=%s amount=%d", bookingID, result.ID, refund)

	updated, err := s.bookings.Transition(ctx, bookingID, func(b *domain.Booking) error {
		if b.PaymentStatus != domain.PaymentPaid {
			return ErrAlreadyRefunded
		}
		b.Payment.RefundAmount = refund
		if refund == b.Pricing.FinalAmount {
			b.PaymentStatus = domain.PaymentRefunded
		} else {
			b.PaymentStatus = domain.PaymentPartialRefund
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return updated, refund, nil
}

func (s *Service) History(ctx context.Context, userID int64, page, limit int) ([]domain.Booking, booking.Pagination, error) {
	rows, total, err := s.bookings.ListSettledByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, booking.Pagination{}, err
	}
	return rows, booking.NewPagination(page, limit, total), nil
}

func (s *Service) getOwned(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrAccessDenied
	}
	return b, nil
}
