package inventory

import "errors"

var (
	ErrInsufficientInventory = errors.New("not enough units available")
	ErrRoomTypeNotFound      = errors.New("room type not found")
)
