package booking

import (
	"fmt"

	"stayinn/internal/domain"
)

const EventAvailabilityChanged = "room-availability-changed"

// HotelTopic is the per-hotel channel availability and confirmation events
// are published on.
func HotelTopic(hotelID int64) string {
	return fmt.Sprintf("hotel-%d", hotelID)
}

type AvailabilityChangedEvent struct {
	Event          string          `json:"event"`
	HotelID        int64           `json:"hotel_id"`
	RoomType       domain.RoomType `json:"room_type"`
	AvailableUnits int             `json:"available_units"`
	BookingID      int64           `json:"booking_id"`
	Action         string          `json:"action,omitempty"`
}
