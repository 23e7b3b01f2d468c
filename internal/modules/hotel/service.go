package hotel

import (
	"context"
	"errors"
	"fmt"

	"stayinn/internal/domain"
	"stayinn/internal/modules/booking"
	"stayinn/internal/pkg/validator"
	"stayinn/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	hotels HotelRepository
}

func NewService(hotels HotelRepository) *Service {
	return &Service{hotels: hotels}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateHotelRequest) (*domain.Hotel, error) {
	seen := make(map[domain.RoomType]bool, len(req.Rooms))
	rooms := make([]domain.RoomInventory, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		if !r.RoomType.Valid() {
			return nil, ErrInvalidRoomType
		}
		if seen[r.RoomType] {
			return nil, ErrDuplicateRoom
		}
		seen[r.RoomType] = true
		rooms = append(rooms, domain.RoomInventory{
			RoomType:       r.RoomType,
			UnitPrice:      r.UnitPrice,
			TotalUnits:     r.TotalUnits,
			AvailableUnits: r.TotalUnits,
			MaxOccupancy:   r.MaxOccupancy,
		})
	}

	h := &domain.Hotel{
		OwnerID:      ownerID,
		Name:         req.Name,
		Description:  req.Description,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		ZipCode:      req.ZipCode,
		CheckInTime:  orDefault(req.CheckInTime, "14:00"),
		CheckOutTime: orDefault(req.CheckOutTime, "12:00"),
		IsActive:     true,
		Rooms:        rooms,
	}
	if fields := validator.Validate(h); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHotel, fields)
	}
	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Update(ctx context.Context, hotelID, actorID int64, role domain.UserRole, req UpdateHotelRequest) (*domain.Hotel, error) {
	h, err := s.get(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != actorID && role != domain.RoleAdmin {
		return nil, ErrAccessDenied
	}

	setString(&h.Name, req.Name)
	setString(&h.Description, req.Description)
	setString(&h.Street, req.Street)
	setString(&h.City, req.City)
	setString(&h.State, req.State)
	setString(&h.Country, req.Country)
	setString(&h.ZipCode, req.ZipCode)
	setString(&h.CheckInTime, req.CheckInTime)
	setString(&h.CheckOutTime, req.CheckOutTime)
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}

	if err := s.hotels.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Hotel, error) {
	return s.get(ctx, id)
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]domain.Hotel, booking.Pagination, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	rows, total, err := s.hotels.Search(ctx, repository.HotelFilter{
		City:     q.City,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, booking.Pagination{}, err
	}
	return rows, booking.NewPagination(page, limit, total), nil
}

func (s *Service) MyHotels(ctx context.Context, ownerID int64) ([]domain.Hotel, error) {
	return s.hotels.ListByOwner(ctx, ownerID)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
