package inventory

import (
	"context"
	"errors"
	"fmt"

	"stayinn/internal/domain"

	"gorm.io/gorm"
)

// Service is the inventory ledger: per-(hotel, room type) unit counts with
// atomic reserve and clamped release.
type Service struct {
	rooms RoomInventoryRepository
}

func NewService(rooms RoomInventoryRepository) *Service {
	return &Service{rooms: rooms}
}

// Reserve takes qty units or fails without side effects. Two concurrent
// reserves of the last unit cannot both succeed: the conditional update in
// the repository admits only one.
func (s *Service) Reserve(ctx context.Context, hotelID int64, roomType domain.RoomType, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", qty)
	}

	affected, err := s.rooms.ReserveUnits(ctx, hotelID, roomType, qty)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Nothing changed: either the row does not exist or it is short on units.
	if _, err := s.rooms.Get(ctx, hotelID, roomType); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomTypeNotFound
		}
		return err
	}
	return ErrInsufficientInventory
}

// Release returns qty units. It is clamped at total capacity in storage and
// succeeds even when the matching reserve is unknown, so replays are safe.
func (s *Service) Release(ctx context.Context, hotelID int64, roomType domain.RoomType, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("release quantity must be positive, got %d", qty)
	}
	return s.rooms.ReleaseUnits(ctx, hotelID, roomType, qty)
}

func (s *Service) Availability(ctx context.Context, hotelID int64, roomType domain.RoomType) (*domain.RoomInventory, error) {
	inv, err := s.rooms.Get(ctx, hotelID, roomType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return inv, nil
}
