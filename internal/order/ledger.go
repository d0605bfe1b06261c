package order

import (
	"time"

	"github.com/google/uuid"
)

// Ledger holds every open tab. Exactly one order is active at a time
// (except transiently inside CreateOrder/Delete); all others are waiting.
// Not safe for concurrent use, callers serialize access.
type Ledger struct {
	orders     map[string]*Order
	sequence   []string // insertion order, for display
	currentID  string
	nextNumber int
}

func NewLedger() *Ledger {
	return &Ledger{
		orders:     make(map[string]*Order),
		nextNumber: 1,
	}
}

// CreateOrder puts the current order (if any) into waiting, opens a fresh
// tab with the next sequential number and makes it current.
func (l *Ledger) CreateOrder() *Order {
	if cur, ok := l.orders[l.currentID]; ok {
		cur.Status = StatusWaiting
	}

	o := &Order{
		ID:        uuid.NewString(),
		Number:    l.nextNumber,
		Items:     []CartLine{},
		CreatedAt: time.Now(),
		Status:    StatusActive,
	}
	l.nextNumber++

	l.orders[o.ID] = o
	l.sequence = append(l.sequence, o.ID)
	l.currentID = o.ID

	return o
}

// SwitchTo makes the target order active and the previous one waiting.
func (l *Ledger) SwitchTo(orderID string) (*Order, error) {
	target, ok := l.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}

	if cur, ok := l.orders[l.currentID]; ok && l.currentID != orderID {
		cur.Status = StatusWaiting
	}

	l.currentID = orderID
	target.Status = StatusActive

	return target, nil
}

// Delete removes an order from the ledger. Deleting the last remaining order
// creates a replacement instead, so the ledger is never left empty. When the
// current order is deleted, the remaining order with the lowest number
// becomes current.
func (l *Ledger) Delete(orderID string) (*Order, error) {
	if _, ok := l.orders[orderID]; !ok {
		return nil, ErrOrderNotFound
	}

	if len(l.orders) == 1 {
		delete(l.orders, orderID)
		l.sequence = l.sequence[:0]
		l.currentID = ""
		return l.CreateOrder(), nil
	}

	delete(l.orders, orderID)
	for i, id := range l.sequence {
		if id == orderID {
			l.sequence = append(l.sequence[:i], l.sequence[i+1:]...)
			break
		}
	}

	if l.currentID == orderID {
		l.currentID = ""
		return l.SwitchTo(l.lowestNumbered())
	}

	return l.Current(), nil
}

func (l *Ledger) lowestNumbered() string {
	var best *Order
	for _, o := range l.orders {
		if best == nil || o.Number < best.Number {
			best = o
		}
	}
	return best.ID
}

// Current returns the active order, or nil before the first creation.
func (l *Ledger) Current() *Order {
	return l.orders[l.currentID]
}

// Get returns an order by id.
func (l *Ledger) Get(orderID string) (*Order, error) {
	o, ok := l.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// All returns the open orders in insertion order.
func (l *Ledger) All() []*Order {
	out := make([]*Order, 0, len(l.sequence))
	for _, id := range l.sequence {
		out = append(out, l.orders[id])
	}
	return out
}

// Len reports how many orders are open.
func (l *Ledger) Len() int {
	return len(l.orders)
}
