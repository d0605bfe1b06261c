// Package checkout turns the active order's cart into a finalized sale.
package checkout

import (
	"context"
	"fmt"
	"time"

	"resto-pos/internal/cart"
	"resto-pos/internal/logger"
	"resto-pos/internal/order"
	"resto-pos/internal/sales"

	"go.uber.org/zap"
)

type State string

const (
	StateIdle      State = "idle"
	StateReviewing State = "reviewing"
	StateConfirmed State = "confirmed"
)

// Review is what the cashier sees before confirming: the order snapshot, its
// total and the suggested cash amount (defaults to the exact total).
type Review struct {
	OrderNumber   int
	Items         []order.CartLine
	Total         float64
	SuggestedPaid float64
}

// Workflow is the per-app checkout state machine: Idle → Reviewing →
// Confirmed, with cancel returning to Idle. After a confirmation it resets
// itself to Idle for the fresh order.
type Workflow struct {
	ledger *order.Ledger
	repo   sales.Repository

	state   State
	orderID string
	total   float64
}

func NewWorkflow(ledger *order.Ledger, repo sales.Repository) *Workflow {
	return &Workflow{
		ledger: ledger,
		repo:   repo,
		state:  StateIdle,
	}
}

func (w *Workflow) State() State {
	return w.state
}

// Open starts reviewing the given order. The total is computed once here and
// used for the rest of the checkout.
func (w *Workflow) Open(o *order.Order) (Review, error) {
	if o == nil || len(o.Items) == 0 {
		return Review{}, ErrEmptyCart
	}

	w.state = StateReviewing
	w.orderID = o.ID
	w.total = cart.Total(o)

	items := make([]order.CartLine, len(o.Items))
	copy(items, o.Items)

	return Review{
		OrderNumber:   o.Number,
		Items:         items,
		Total:         w.total,
		SuggestedPaid: w.total,
	}, nil
}

// Cancel abandons the review. The cart is untouched.
func (w *Workflow) Cancel() {
	w.state = StateIdle
	w.orderID = ""
	w.total = 0
}

// ChangePreview is the live "change due" display. It never goes negative;
// underpayment is only rejected at Confirm.
func (w *Workflow) ChangePreview(paid float64) float64 {
	change := paid - w.total
	if change < 0 {
		return 0
	}
	return change
}

// Confirm validates the payment, persists the sale and replaces the paid
// order with a fresh one. On any failure the order and cart are untouched and
// the review stays open.
func (w *Workflow) Confirm(ctx context.Context, paid float64) (sales.Sale, *order.Order, error) {
	if w.state != StateReviewing {
		return sales.Sale{}, nil, ErrNotReviewing
	}

	o, err := w.ledger.Get(w.orderID)
	if err != nil {
		return sales.Sale{}, nil, err
	}

	if paid < w.total {
		return sales.Sale{}, nil, &InsufficientPaymentError{Deficit: w.total - paid}
	}

	items := make([]order.CartLine, len(o.Items))
	copy(items, o.Items)

	sale := sales.Sale{
		OrderNumber: o.Number,
		CreatedAt:   time.Now(),
		Items:       items,
		Total:       w.total,
		Paid:        paid,
		Change:      paid - w.total,
	}

	id, err := w.repo.Append(ctx, sale)
	if err != nil {
		return sales.Sale{}, nil, fmt.Errorf("failed to persist sale: %w", err)
	}
	sale.ID = id

	w.state = StateConfirmed

	if _, err := w.ledger.Delete(o.ID); err != nil {
		// the sale is already durable; surface the ledger problem as-is
		w.Cancel()
		return sale, nil, err
	}
	fresh := w.ledger.CreateOrder()

	logger.FromCtx(ctx).Info("payment confirmed",
		zap.Int("order_number", sale.OrderNumber),
		zap.Float64("total", sale.Total),
		zap.Float64("paid", sale.Paid),
		zap.Float64("change", sale.Change),
	)

	w.Cancel()
	return sale, fresh, nil
}
