package hotel

import (
	"context"
	"testing"

	"stayinn/internal/domain"
	"stayinn/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	args := m.Called(ctx, h)
	if h != nil && args.Error(0) == nil {
		h.ID = 77
	}
	return args.Error(0)
}

func (m *MockHotelRepository) Update(ctx context.Context, h *domain.Hotel) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) Search(ctx context.Context, f repository.HotelFilter) ([]domain.Hotel, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Hotel), args.Get(1).(int64), args.Error(2)
}

func (m *MockHotelRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Hotel, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func validHotelRequest() CreateHotelRequest {
	return CreateHotelRequest{
		Name: "StayInn Test",
		City: "Jaipur",
		Rooms: []RoomRequest{
			{RoomType: domain.RoomDouble, UnitPrice: 2500, TotalUnits: 10, MaxOccupancy: 2},
		},
	}
}

func TestService_Create_FillsAvailableUnits(t *testing.T) {
	repo := new(MockHotelRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Hotel")).Return(nil)

	svc := NewService(repo)
	h, err := svc.Create(context.Background(), 5, validHotelRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(5), h.OwnerID)
	assert.Equal(t, "14:00", h.CheckInTime)
	assert.Equal(t, 10, h.Rooms[0].AvailableUnits)
	assert.True(t, h.IsActive)
}

func TestService_Create_RejectsBadRooms(t *testing.T) {
	svc := NewService(new(MockHotelRepository))

	req := validHotelRequest()
	req.Rooms[0].RoomType = "Penthouse"
	_, err := svc.Create(context.Background(), 5, req)
	assert.ErrorIs(t, err, ErrInvalidRoomType)

	req = validHotelRequest()
	req.Rooms = append(req.Rooms, req.Rooms[0])
	_, err = svc.Create(context.Background(), 5, req)
	assert.ErrorIs(t, err, ErrDuplicateRoom)
}

func TestService_Update_OwnershipRequired(t *testing.T) {
	repo := new(MockHotelRepository)
	repo.On("GetByID", mock.Anything, int64(77)).Return(&domain.Hotel{ID: 77, OwnerID: 5, Name: "A", City: "B"}, nil)

	svc := NewService(repo)
	name := "New Name"
	_, err := svc.Update(context.Background(), 77, 6, domain.RoleHotelOwner, UpdateHotelRequest{Name: &name})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Update_AppliesPartialFields(t *testing.T) {
	repo := new(MockHotelRepository)
	repo.On("GetByID", mock.Anything, int64(77)).Return(&domain.Hotel{ID: 77, OwnerID: 5, Name: "Old", City: "Jaipur"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Hotel")).Return(nil)

	svc := NewService(repo)
	name := "New Name"
	inactive := false
	h, err := svc.Update(context.Background(), 77, 5, domain.RoleHotelOwner, UpdateHotelRequest{Name: &name, IsActive: &inactive})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", h.Name)
	assert.Equal(t, "Jaipur", h.City)
	assert.False(t, h.IsActive)
}
