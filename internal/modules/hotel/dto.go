package hotel

import "stayinn/internal/domain"

type RoomRequest struct {
	RoomType     domain.RoomType `json:"room_type" binding:"required"`
	UnitPrice    int64           `json:"unit_price" binding:"required,min=1"`
	TotalUnits   int             `json:"total_units" binding:"required,min=1"`
	MaxOccupancy int             `json:"max_occupancy" binding:"required,min=1"`
}

type CreateHotelRequest struct {
	Name         string        `json:"name" binding:"required,max=200"`
	Description  string        `json:"description"`
	Street       string        `json:"street"`
	City         string        `json:"city" binding:"required,max=100"`
	State        string        `json:"state"`
	Country      string        `json:"country"`
	ZipCode      string        `json:"zip_code"`
	CheckInTime  string        `json:"check_in_time"`
	CheckOutTime string        `json:"check_out_time"`
	Rooms        []RoomRequest `json:"rooms" binding:"required,min=1,dive"`
}

// UpdateHotelRequest carries only hotel-level fields. Room inventory is not
// editable through this endpoint; counts move through the booking flow.
type UpdateHotelRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Street       *string `json:"street"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	ZipCode      *string `json:"zip_code"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	IsActive     *bool   `json:"is_active"`
}

type SearchQuery struct {
	City     string `form:"city"`
	MinPrice int64  `form:"min_price"`
	MaxPrice int64  `form:"max_price"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}
