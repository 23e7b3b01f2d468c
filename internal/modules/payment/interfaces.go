package payment

import (
	"context"

	"stayinn/internal/domain"
)

// BookingStore is the slice of booking storage the reconciler needs.
// Transition must run fn under a row lock, same contract as the booking
// module's repository.
type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Transition(ctx context.Context, id int64, fn func(b *domain.Booking) error) (*domain.Booking, error)
	ListSettledByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, int64, error)
}

// Intent mirrors the gateway's payment intent object, reduced to the fields
// the reconciler reads.
type Intent struct {
	ID            string
	ClientSecret  string
	Status        string
	Amount        int64
	Currency      string
	PaymentMethod string
	LatestCharge  string
	Metadata      map[string]string
}

type RefundResult struct {
	ID     string
	Status string
	Amount int64
}

// Event is a verified webhook event.
type Event struct {
	ID     string
	Type   string
	Intent *Intent
}

// Gateway is the external payment provider, consumer side. Amounts are in
// the same integer currency units the pricing engine uses; the concrete
// client converts to the provider's subunits.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
	Refund(ctx context.Context, intentID string, amount int64, reason string) (*RefundResult, error)
	VerifyWebhook(payload []byte, sigHeader string) (*Event, error)
}

// Publisher delivers fire-and-forget notifications.
type Publisher interface {
	Publish(topic string, payload any)
}
