package repository

import (
	"context"

	"stayinn/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, ref string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("reference = ?", ref).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Transition applies fn to the booking under a row lock and saves the result.
// All state changes after creation go through here, which serializes
// concurrent cancel/check-in/check-out/payment application on one booking.
// fn returning an error rolls the transaction back with nothing applied.
func (r *BookingRepository) Transition(ctx context.Context, id int64, fn func(b *domain.Booking) error) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error; err != nil {
			return err
		}
		if err := fn(&b); err != nil {
			return err
		}
		if err := tx.Save(&b).Error; err != nil {
			return err
		}
		out = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, status string, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return listBookings(q, limit, offset)
}

func (r *BookingRepository) ListByHotel(ctx context.Context, hotelID int64, status string, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("hotel_id = ?", hotelID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return listBookings(q, limit, offset)
}

// ListSettledByUser returns bookings whose payment reached a terminal money
// state, for the payment history endpoint.
func (r *BookingRepository) ListSettledByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("user_id = ? AND payment_status IN ?", userID, []domain.PaymentStatus{
			domain.PaymentPaid, domain.PaymentRefunded, domain.PaymentPartialRefund,
		})
	return listBookings(q, limit, offset)
}

func listBookings(q *gorm.DB, limit, offset int) ([]domain.Booking, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.Booking
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
