package order

import "time"

type Status string

const (
	StatusActive  Status = "active"
	StatusWaiting Status = "waiting"
)

// CartLine is one menu item's quantity within an order. Name and price are
// snapshots taken when the line is first added, not live references.
type CartLine struct {
	ItemID uint    `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Qty    int     `json:"qty"`
}

// Order is a customer's open tab.
type Order struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	Items     []CartLine `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	Status    Status     `json:"status"`
}
