package booking

import (
	"time"

	"stayinn/internal/domain"
)

type GuestsRequest struct {
	Adults   int `json:"adults" binding:"required,min=1"`
	Children int `json:"children" binding:"min=0"`
}

type GuestDetailsRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	SpecialRequests string `json:"special_requests"`
}

type CreateBookingRequest struct {
	HotelID      int64               `json:"hotel_id" binding:"required"`
	RoomType     domain.RoomType     `json:"room_type" binding:"required"`
	UnitCount    int                 `json:"unit_count" binding:"required,min=1"`
	Guests       GuestsRequest       `json:"guests" binding:"required"`
	CheckIn      time.Time           `json:"check_in" binding:"required"`
	CheckOut     time.Time           `json:"check_out" binding:"required"`
	GuestDetails GuestDetailsRequest `json:"guest_details" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
