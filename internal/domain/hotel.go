package domain

import "time"

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomDeluxe RoomType = "Deluxe"
	RoomSuite  RoomType = "Suite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomDeluxe, RoomSuite:
		return true
	}
	return false
}

// RoomInventory tracks capacity for one room type of a hotel.
// available_units is only ever changed through the conditional updates in
// RoomInventoryRepository so 0 <= available_units <= total_units holds under
// concurrent reserve/release.
type RoomInventory struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	HotelID        int64     `gorm:"index:idx_hotel_room_type,unique;not null" json:"hotel_id"`
	RoomType       RoomType  `gorm:"index:idx_hotel_room_type,unique;type:varchar(16);not null" json:"room_type"`
	UnitPrice      int64     `gorm:"not null" json:"unit_price"`
	TotalUnits     int       `gorm:"not null" json:"total_units"`
	AvailableUnits int       `gorm:"not null" json:"available_units"`
	MaxOccupancy   int       `gorm:"not null" json:"max_occupancy"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (RoomInventory) TableName() string { return "room_inventories" }

type Hotel struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	OwnerID      int64     `gorm:"index;not null" json:"owner_id"`
	Name         string    `gorm:"type:varchar(200);not null" json:"name" validate:"required"`
	Description  string    `gorm:"type:text" json:"description"`
	Street       string    `gorm:"type:varchar(200)" json:"street"`
	City         string    `gorm:"type:varchar(100);index" json:"city" validate:"required"`
	State        string    `gorm:"type:varchar(100)" json:"state"`
	Country      string    `gorm:"type:varchar(100)" json:"country"`
	ZipCode      string    `gorm:"type:varchar(20)" json:"zip_code"`
	CheckInTime  string    `gorm:"type:varchar(5);default:'14:00'" json:"check_in_time"`
	CheckOutTime string    `gorm:"type:varchar(5);default:'12:00'" json:"check_out_time"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Rooms []RoomInventory `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}

func (Hotel) TableName() string { return "hotels" }
