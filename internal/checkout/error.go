package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart    = errors.New("order has no items")
	ErrNotReviewing = errors.New("no checkout in progress")
)

// InsufficientPaymentError blocks a confirmation when the cash tendered does
// not cover the total. Deficit is total − paid.
type InsufficientPaymentError struct {
	Deficit float64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment, missing %.2f", e.Deficit)
}
