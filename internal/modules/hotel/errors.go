package hotel

import "errors"

var (
	ErrNotFound        = errors.New("hotel: not found")
	ErrAccessDenied    = errors.New("hotel: access denied")
	ErrInvalidRoomType = errors.New("hotel: invalid room type")
	ErrDuplicateRoom   = errors.New("hotel: duplicate room type")
	ErrInvalidHotel    = errors.New("hotel: validation failed")
)
