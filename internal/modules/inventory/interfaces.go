package inventory

import (
	"context"

	"stayinn/internal/domain"
)

// RoomInventoryRepository is the storage contract the ledger needs.
// ReserveUnits must be a single conditional update: it reports how many rows
// it changed and never decrements below zero.
type RoomInventoryRepository interface {
	Get(ctx context.Context, hotelID int64, roomType domain.RoomType) (*domain.RoomInventory, error)
	ReserveUnits(ctx context.Context, hotelID int64, roomType domain.RoomType, qty int) (int64, error)
	ReleaseUnits(ctx context.Context, hotelID int64, roomType domain.RoomType, qty int) error
}
