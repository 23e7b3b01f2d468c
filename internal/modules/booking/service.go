package booking

import (
	"context"
	"errors"
	"log"
	"math"
	"math/rand"
	"strconv"
	"time"

	"stayinn/internal/domain"
	"stayinn/internal/modules/inventory"
	"stayinn/internal/modules/pricing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings  BookingRepository
	ledger    InventoryLedger
	hotels    HotelReader
	publisher EventPublisher

	policy           Policy
	taxRate          float64
	allowLateCheckIn bool
}

type Option func(*Service)

func WithPolicy(p Policy) Option {
	return func(s *Service) { s.policy = p }
}

func WithTaxRate(rate float64) Option {
	return func(s *Service) { s.taxRate = rate }
}

func WithLateCheckIn(allow bool) Option {
	return func(s *Service) { s.allowLateCheckIn = allow }
}

func NewService(bookings BookingRepository, ledger InventoryLedger, hotels HotelReader, publisher EventPublisher, opts ...Option) *Service {
	s := &Service{
		bookings:  bookings,
		ledger:    ledger,
		hotels:    hotels,
		publisher: publisher,
		policy:    DefaultPolicy(),
		taxRate:   pricing.DefaultTaxRate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Policy() Policy { return s.policy }

// Create validates the request, takes the units atomically and persists the
// booking in pending state. The availability-changed event for a successful
// creation is published by the handler, not here.
func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	now := time.Now()
	if !req.CheckIn.After(now) || !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidDateRange
	}
	if !req.RoomType.Valid() {
		return nil, inventory.ErrRoomTypeNotFound
	}

	nightCount := int(math.Ceil(req.CheckOut.Sub(req.CheckIn).Hours() / 24))

	b := &domain.Booking{
		UserID:        userID,
		HotelID:       req.HotelID,
		RoomType:      req.RoomType,
		UnitCount:     req.UnitCount,
		Adults:        req.Guests.Adults,
		Children:      req.Guests.Children,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		NightCount:    nightCount,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		Guest: domain.GuestDetails{
			Name:            req.GuestDetails.Name,
			Email:           req.GuestDetails.Email,
			Phone:           req.GuestDetails.Phone,
			SpecialRequests: req.GuestDetails.SpecialRequests,
		},
		Reference: newReference(),
	}

	inv, err := s.ledger.Availability(ctx, b.HotelID, b.RoomType)
	if err != nil {
		return nil, err
	}
	if b.TotalGuests() > inv.MaxOccupancy*b.UnitCount {
		return nil, ErrOccupancyExceeded
	}

	if err := s.ledger.Reserve(ctx, b.HotelID, b.RoomType, b.UnitCount); err != nil {
		return nil, err
	}

	quote := pricing.Calculate(inv.UnitPrice, b.UnitCount, nightCount, s.taxRate, 0)
	b.Pricing = domain.Pricing{
		UnitPrice:   quote.UnitPrice,
		Subtotal:    quote.Subtotal,
		Taxes:       quote.Taxes,
		Discount:    quote.Discount,
		FinalAmount: quote.FinalAmount,
	}

	for attempt := 0; attempt < 3; attempt++ {
		err = s.bookings.Create(ctx, b)
		if err == nil {
			return b, nil
		}
		if isUniqueViolation(err) {
			b.Reference = newReference()
			continue
		}
		break
	}

	// Creation failed after the units were taken; give them back.
	if relErr := s.ledger.Release(ctx, req.HotelID, req.RoomType, req.UnitCount); relErr != nil {
		log.Printf("level=error msg=failed to release units after create failure hotel_id=%d room_type=%s err=%v", req.HotelID, req.RoomType, relErr)
	}
	return nil, err
}

func (s *Service) Get(ctx context.Context, bookingID, userID int64, role domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.authorizeRead(ctx, b, userID, role)
}

// GetByReference resolves a booking by its public reference, the identifier
// guests actually hold, with the same access rules as Get.
func (s *Service) GetByReference(ctx context.Context, ref string, userID int64, role domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByReference(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.authorizeRead(ctx, b, userID, role)
}

func (s *Service) authorizeRead(ctx context.Context, b *domain.Booking, userID int64, role domain.UserRole) (*domain.Booking, error) {
	if b.UserID == userID || role == domain.RoleAdmin {
		return b, nil
	}
	if role == domain.RoleHotelOwner {
		hotel, err := s.hotels.GetByID(ctx, b.HotelID)
		if err == nil && hotel.OwnerID == userID {
			return b, nil
		}
	}
	return nil, ErrAccessDenied
}

func (s *Service) ListMy(ctx context.Context, userID int64, status string, page, limit int) ([]domain.Booking, Pagination, error) {
	rows, total, err := s.bookings.ListByUser(ctx, userID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return rows, NewPagination(page, limit, total), nil
}

func (s *Service) ListForHotel(ctx context.Context, hotelID, userID int64, role domain.UserRole, status string, page, limit int) ([]domain.Booking, Pagination, error) {
	if role != domain.RoleAdmin {
		hotel, err := s.hotels.GetByID(ctx, hotelID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, Pagination{}, ErrNotFound
			}
			return nil, Pagination{}, err
		}
		if hotel.OwnerID != userID {
			return nil, Pagination{}, ErrAccessDenied
		}
	}
	rows, total, err := s.bookings.ListByHotel(ctx, hotelID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return rows, NewPagination(page, limit, total), nil
}

// Cancel moves a pending or confirmed booking to cancelled, records the
// refund computed by the policy and releases the held units. The payment
// status is only touched when a refund is due; issuing the actual refund on
// the gateway is the payment reconciler's job.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64, reason string) (*domain.Booking, int64, error) {
	var refund int64
	updated, err := s.bookings.Transition(ctx, bookingID, func(b *domain.Booking) error {
		if b.UserID != userID {
			return ErrAccessDenied
		}
		now := time.Now()
		if !s.policy.Cancellable(b.CheckIn, now, b.Status) {
			return ErrNotCancellable
		}
		refund = s.policy.RefundAmount(b.CheckIn, now, b.Pricing.FinalAmount, b.Status)

		b.Status = domain.BookingCancelled
		b.CancellationReason = reason
		b.CancelledAt = &now
		b.Payment.RefundAmount = refund
		if refund > 0 {
			if refund == b.Pricing.FinalAmount {
				b.PaymentStatus = domain.PaymentRefunded
			} else {
				b.PaymentStatus = domain.PaymentPartialRefund
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	if err := s.ledger.Release(ctx, updated.HotelID, updated.RoomType, updated.UnitCount); err != nil {
		log.Printf("level=error msg=failed to release units on cancel booking_id=%d err=%v", updated.ID, err)
	}
	s.publishAvailability(ctx, updated, "cancelled")

	return updated, refund, nil
}

func (s *Service) CheckIn(ctx context.Context, bookingID, actorID int64, role domain.UserRole) (*domain.Booking, error) {
	if err := s.requireHotelAccess(ctx, bookingID, actorID, role); err != nil {
		return nil, err
	}
	updated, err := s.bookings.Transition(ctx, bookingID, func(b *domain.Booking) error {
		if b.Status != domain.BookingConfirmed {
			return ErrInvalidTransition
		}
		now := time.Now()
		if now.Before(b.CheckIn.Add(-24*time.Hour)) || now.After(b.CheckIn.Add(24*time.Hour)) {
			return ErrCheckInWindow
		}
		if !s.allowLateCheckIn && now.After(b.CheckOut) {
			return ErrCheckInWindow
		}
		b.Status = domain.BookingCheckedIn
		b.CheckedInAt = &now
		return nil
	})
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return updated, err
}

func (s *Service) CheckOut(ctx context.Context, bookingID, actorID int64, role domain.UserRole) (*domain.Booking, error) {
	if err := s.requireHotelAccess(ctx, bookingID, actorID, role); err != nil {
		return nil, err
	}
	updated, err := s.bookings.Transition(ctx, bookingID, func(b *domain.Booking) error {
		if b.Status != domain.BookingCheckedIn {
			return ErrInvalidTransition
		}
		now := time.Now()
		b.Status = domain.BookingCheckedOut
		b.CheckedOutAt = &now
		return nil
	})
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return updated, err
}

func (s *Service) Availability(ctx context.Context, hotelID int64, roomType domain.RoomType) (*domain.RoomInventory, error) {
	return s.ledger.Availability(ctx, hotelID, roomType)
}

func (s *Service) requireHotelAccess(ctx context.Context, bookingID, actorID int64, role domain.UserRole) error {
	if role == domain.RoleAdmin {
		return nil
	}
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	hotel, err := s.hotels.GetByID(ctx, b.HotelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if hotel.OwnerID != actorID {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) publishAvailability(ctx context.Context, b *domain.Booking, action string) {
	if s.publisher == nil {
		return
	}
	inv, err := s.ledger.Availability(ctx, b.HotelID, b.RoomType)
	if err != nil {
		log.Printf("level=error msg=failed to load availability for event booking_id=%d err=%v", b.ID, err)
		return
	}
	s.publisher.Publish(HotelTopic(b.HotelID), AvailabilityChangedEvent{
		Event:          EventAvailabilityChanged,
		HotelID:        b.HotelID,
		RoomType:       b.RoomType,
		AvailableUnits: inv.AvailableUnits,
		BookingID:      b.ID,
		Action:         action,
	})
}

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newReference builds a booking reference like STY1735689600000X7K2P.
// A unique index on the column catches the unlikely collision; Create
// retries with a fresh reference in that case.
func newReference() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return "STY" + strconv.FormatInt(time.Now().UnixMilli(), 10) + string(suffix)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
