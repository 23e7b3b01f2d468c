package hotel

import (
	"context"

	"stayinn/internal/domain"
	"stayinn/internal/repository"
)

type HotelRepository interface {
	Create(ctx context.Context, h *domain.Hotel) error
	Update(ctx context.Context, h *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	Search(ctx context.Context, f repository.HotelFilter) ([]domain.Hotel, int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Hotel, error)
}
