package cart

import "errors"

var (
	ErrCartEmpty       = errors.New("cart is already empty")
	ErrIndexOutOfRange = errors.New("cart line index out of range")
)
