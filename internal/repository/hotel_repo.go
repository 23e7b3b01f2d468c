package repository

import (
	"context"

	"stayinn/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := r.db.WithContext(ctx).Preload("Rooms").First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

type HotelFilter struct {
	City     string
	MinPrice int64
	MaxPrice int64
	Limit    int
	Offset   int
}

func (r *HotelRepository) Search(ctx context.Context, f HotelFilter) ([]domain.Hotel, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hotel{}).Where("is_active = ?", true)
	if f.City != "" {
		q = q.Where("city LIKE ?", "%"+f.City+"%")
	}
	if f.MinPrice > 0 || f.MaxPrice > 0 {
		sub := r.db.Model(&domain.RoomInventory{}).Select("hotel_id")
		if f.MinPrice > 0 {
			sub = sub.Where("unit_price >= ?", f.MinPrice)
		}
		if f.MaxPrice > 0 {
			sub = sub.Where("unit_price <= ?", f.MaxPrice)
		}
		q = q.Where("id IN (?)", sub)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hotels []domain.Hotel
	err := q.Preload("Rooms").Order("created_at DESC").
		Limit(f.Limit).Offset(f.Offset).Find(&hotels).Error
	if err != nil {
		return nil, 0, err
	}
	return hotels, total, nil
}

func (r *HotelRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Hotel, error) {
	var hotels []domain.Hotel
	err := r.db.WithContext(ctx).Preload("Rooms").
		Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&hotels).Error
	return hotels, err
}
