package booking

import (
	"context"

	"stayinn/internal/domain"
)

// BookingRepository defines the storage operations the lifecycle needs.
// Transition must run fn under a row lock and persist the mutated booking
// atomically, or discard everything when fn errors.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
	Transition(ctx context.Context, id int64, fn func(b *domain.Booking) error) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, status string, limit, offset int) ([]domain.Booking, int64, error)
	ListByHotel(ctx context.Context, hotelID int64, status string, limit, offset int) ([]domain.Booking, int64, error)
}

// InventoryLedger is the atomic reserve/release contract.
type InventoryLedger interface {
	Reserve(ctx context.Context, hotelID int64, roomType domain.RoomType, qty int) error
	Release(ctx context.Context, hotelID int64, roomType domain.RoomType, qty int) error
	Availability(ctx context.Context, hotelID int64, roomType domain.RoomType) (*domain.RoomInventory, error)
}

// HotelReader resolves hotels for access checks.
type HotelReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

// EventPublisher delivers fire-and-forget notifications. Implementations
// must not block the caller on slow subscribers.
type EventPublisher interface {
	Publish(topic string, payload any)
}
