package sales

import (
	"time"

	"resto-pos/internal/order"
)

// Sale is the immutable record of a paid checkout. OrderNumber and Items are
// copies taken at confirmation time, not live references.
type Sale struct {
	ID          uint             `json:"id"`
	OrderNumber int              `json:"orderNumber"`
	CreatedAt   time.Time        `json:"createdAt"`
	Items       []order.CartLine `json:"items"`
	Total       float64          `json:"total"`
	Paid        float64          `json:"paid"`
	Change      float64          `json:"change"`
}
