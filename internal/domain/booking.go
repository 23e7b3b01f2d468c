package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
	// BookingNoShow is set by an external scheduling process, never by the
	// lifecycle operations in this codebase.
	BookingNoShow BookingStatus = "no-show"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentFailed        PaymentStatus = "failed"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentPartialRefund PaymentStatus = "partial-refund"
)

// Pricing is the money snapshot taken at booking creation.
// FinalAmount = Subtotal + Taxes - Discount, integer currency units.
type Pricing struct {
	UnitPrice   int64 `json:"unit_price"`
	Subtotal    int64 `json:"subtotal"`
	Taxes       int64 `json:"taxes"`
	Discount    int64 `json:"discount"`
	FinalAmount int64 `json:"final_amount"`
}

// PaymentRecord tracks the external gateway state applied to this booking.
// GatewayIntentID together with PaymentStatus makes gateway event application
// idempotent.
type PaymentRecord struct {
	GatewayIntentID string `gorm:"type:varchar(128);index" json:"gateway_intent_id,omitempty"`
	PaymentMethod   string `gorm:"type:varchar(32)" json:"payment_method,omitempty"`
	PaidAmount      int64  `json:"paid_amount"`
	RefundAmount    int64  `json:"refund_amount"`
	TransactionID   string `gorm:"type:varchar(128)" json:"transaction_id,omitempty"`
}

type GuestDetails struct {
	Name            string `gorm:"type:varchar(120)" json:"name"`
	Email           string `gorm:"type:varchar(200)" json:"email"`
	Phone           string `gorm:"type:varchar(32)" json:"phone"`
	SpecialRequests string `gorm:"type:text" json:"special_requests,omitempty"`
}

type Booking struct {
	ID        int64    `gorm:"primaryKey" json:"id"`
	UserID    int64    `gorm:"index;not null" json:"user_id"`
	HotelID   int64    `gorm:"index;not null" json:"hotel_id"`
	RoomType  RoomType `gorm:"type:varchar(16);not null" json:"room_type"`
	UnitCount int      `gorm:"not null" json:"unit_count"`
	Adults    int      `gorm:"not null" json:"adults"`
	Children  int      `gorm:"default:0" json:"children"`

	CheckIn    time.Time `gorm:"not null" json:"check_in"`
	CheckOut   time.Time `gorm:"not null" json:"check_out"`
	NightCount int       `gorm:"not null" json:"night_count"`

	Pricing       Pricing       `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
	Status        BookingStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);default:'pending';index" json:"payment_status"`
	Payment       PaymentRecord `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	Guest         GuestDetails  `gorm:"embedded;embeddedPrefix:guest_" json:"guest_details"`

	// Reference is assigned once at creation and never changes.
	Reference          string     `gorm:"uniqueIndex;type:varchar(32);not null" json:"reference"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CheckedInAt        *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt       *time.Time `json:"checked_out_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

func (b *Booking) TotalGuests() int { return b.Adults + b.Children }
