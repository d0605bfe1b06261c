// Package cart mutates a single order's line items. Lines are addressed by
// position; indices shift after a removal, so callers re-read the cart after
// every mutation instead of caching indices.
package cart

import (
	"math"

	"resto-pos/internal/menu"
	"resto-pos/internal/order"
)

// AddItem merges the menu item into the order's cart. A line already holding
// the item gets qty+1 and keeps its original name/price snapshot; otherwise a
// new line with qty 1 is appended.
func AddItem(o *order.Order, item menu.Item) {
	for i := range o.Items {
		if o.Items[i].ItemID == item.ID {
			o.Items[i].Qty++
			return
		}
	}

	o.Items = append(o.Items, order.CartLine{
		ItemID: item.ID,
		Name:   item.Name,
		Price:  item.Price,
		Qty:    1,
	})
}

// Increment adds 1 to the line's quantity.
func Increment(o *order.Order, index int) error {
	if index < 0 || index >= len(o.Items) {
		return ErrIndexOutOfRange
	}
	o.Items[index].Qty++
	return nil
}

// Decrement subtracts 1 from the line's quantity; a qty-1 line is removed.
func Decrement(o *order.Order, index int) error {
	if index < 0 || index >= len(o.Items) {
		return ErrIndexOutOfRange
	}

	if o.Items[index].Qty > 1 {
		o.Items[index].Qty--
		return nil
	}

	o.Items = append(o.Items[:index], o.Items[index+1:]...)
	return nil
}

// RemoveLine deletes the line regardless of quantity.
func RemoveLine(o *order.Order, index int) error {
	if index < 0 || index >= len(o.Items) {
		return ErrIndexOutOfRange
	}
	o.Items = append(o.Items[:index], o.Items[index+1:]...)
	return nil
}

// Clear empties the cart.
func Clear(o *order.Order) error {
	if len(o.Items) == 0 {
		return ErrCartEmpty
	}
	o.Items = o.Items[:0]
	return nil
}

// Total sums price×qty over all lines. Safe on a nil order.
func Total(o *order.Order) float64 {
	if o == nil {
		return 0
	}
	var total float64
	for _, line := range o.Items {
		total += line.Price * float64(line.Qty)
	}
	return total
}

// ItemCount sums the quantities over all lines. Safe on a nil order.
func ItemCount(o *order.Order) int {
	if o == nil {
		return 0
	}
	count := 0
	for _, line := range o.Items {
		count += line.Qty
	}
	return count
}

// RoundCents rounds to 2 decimals for display and comparisons.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
