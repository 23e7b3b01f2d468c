package repository

import (
	"context"

	"stayinn/internal/domain"

	"gorm.io/gorm"
)

type RoomInventoryRepository struct {
	db *gorm.DB
}

func NewRoomInventoryRepository(db *gorm.DB) *RoomInventoryRepository {
	return &RoomInventoryRepository{db: db}
}

func (r *RoomInventoryRepository) Get(ctx context.Context, hotelID int64, roomType domain.RoomType) (*domain.RoomInventory, error) {
	var inv domain.RoomInventory
	tx := r.db.WithContext(ctx).
		Where("hotel_id = ? AND room_type = ?", hotelID, roomType).
		First(&inv)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &inv, nil
}

// ReserveUnits performs the check-and-decrement as a single conditional
// UPDATE. Returns the number of rows changed: 1 when the units were taken,
// 0 when the row is missing or has fewer than qty units left.
func (r *RoomInventoryRepository) ReserveUnits(ctx context.Context, hotelID int64, roomType domain.RoomType, qty int) (int64, error) {
	q := `
UPDATE room_inventories
SET available_units = available_units - ?, updated_at = CURRENT_TIMESTAMP
WHERE hotel_id = ? AND room_type = ? AND available_units >= ?
`
	tx := r.db.WithContext(ctx).Exec(q, qty, hotelID, roomType, qty)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// ReleaseUnits adds qty back, clamped at total_units so replayed releases
// cannot push availability past capacity.
func (r *RoomInventoryRepository) ReleaseUnits(ctx context.Context, hotelID int64, roomType domain.RoomType, qty int) error {
	q := `
UPDATE room_inventories
SET available_units = CASE
      WHEN available_units + ? > total_units THEN total_units
      ELSE available_units + ?
    END,
    updated_at = CURRENT_TIMESTAMP
WHERE hotel_id = ? AND room_type = ?
`
	return r.db.WithContext(ctx).Exec(q, qty, qty, hotelID, roomType).Error
}
