package menu

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidName  = errors.New("menu item name is required")
	ErrInvalidPrice = errors.New("menu item price must be greater than 0")
	ErrInvalidType  = errors.New("invalid menu item type")

	// -- Resource State --
	ErrItemNotFound = errors.New("menu item not found")
)
