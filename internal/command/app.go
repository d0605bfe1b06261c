package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"resto-pos/internal/cart"
	"resto-pos/internal/checkout"
	"resto-pos/internal/logger"
	"resto-pos/internal/menu"
	"resto-pos/internal/order"
	"resto-pos/internal/sales"

	"go.uber.org/zap"
)

var ErrUnknownCommand = errors.New("unknown command")

// App owns the in-memory state: the order ledger, the checkout workflow and
// the active sales filter. A mutex serializes dispatches, so every command
// runs to completion before the next one starts, the same one-event-at-a-time
// discipline the UI depends on.
type App struct {
	mu sync.Mutex

	ledger   *order.Ledger
	workflow *checkout.Workflow
	menuSvc  menu.Service
	sales    sales.Repository

	filter sales.Filter
	now    func() time.Time
}

func NewApp(menuSvc menu.Service, salesRepo sales.Repository) *App {
	ledger := order.NewLedger()
	a := &App{
		ledger:   ledger,
		workflow: checkout.NewWorkflow(ledger, salesRepo),
		menuSvc:  menuSvc,
		sales:    salesRepo,
		filter:   sales.Filter{Period: sales.PeriodDay},
		now:      time.Now,
	}

	// the app always starts with one open tab
	a.ledger.CreateOrder()
	return a
}

// Dispatch applies one command and returns its result. Failed commands leave
// the in-memory state untouched.
func (a *App) Dispatch(ctx context.Context, cmd Command) (any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch c := cmd.(type) {
	case NewOrder:
		o := a.ledger.CreateOrder()
		logger.FromCtx(ctx).Info("order created", zap.Int("order_number", o.Number))
		return o, nil

	case SwitchOrder:
		return a.ledger.SwitchTo(c.OrderID)

	case DeleteOrder:
		return a.ledger.Delete(c.OrderID)

	case AddItem:
		return a.addItem(ctx, c.ItemID)

	case IncrementLine:
		return a.mutateCart(func(o *order.Order) error { return cart.Increment(o, c.Index) })

	case DecrementLine:
		return a.mutateCart(func(o *order.Order) error { return cart.Decrement(o, c.Index) })

	case RemoveLine:
		return a.mutateCart(func(o *order.Order) error { return cart.RemoveLine(o, c.Index) })

	case ClearCart:
		return a.mutateCart(cart.Clear)

	case OpenCheckout:
		return a.workflow.Open(a.ledger.Current())

	case CancelCheckout:
		a.workflow.Cancel()
		return nil, nil

	case ConfirmPayment:
		sale, fresh, err := a.workflow.Confirm(ctx, c.Paid)
		if err != nil {
			return nil, err
		}
		return ConfirmResult{Sale: sale, NewOrder: fresh}, nil

	case SetPeriod:
		return a.setPeriod(sales.Period(c.Period))

	case SetCustomRange:
		a.filter = sales.Filter{Period: sales.PeriodCustom, From: c.From, To: c.To}
		return a.filter, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// ConfirmResult carries the persisted sale and the fresh order that replaced
// the paid one.
type ConfirmResult struct {
	Sale     sales.Sale   `json:"sale"`
	NewOrder *order.Order `json:"newOrder"`
}

func (a *App) addItem(ctx context.Context, itemID uint) (*order.Order, error) {
	o := a.ledger.Current()
	if o == nil {
		return nil, order.ErrNoActiveOrder
	}

	items, err := a.menuSvc.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if it.ID == itemID {
			cart.AddItem(o, it)
			return o, nil
		}
	}

	return nil, menu.ErrItemNotFound
}

func (a *App) mutateCart(fn func(*order.Order) error) (*order.Order, error) {
	o := a.ledger.Current()
	if o == nil {
		return nil, order.ErrNoActiveOrder
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	return o, nil
}

// setPeriod selects a preset and resets the custom range to the preset's
// computed bounds, so a later manual edit starts from them.
func (a *App) setPeriod(p sales.Period) (sales.Filter, error) {
	switch p {
	case sales.PeriodDay, sales.PeriodWeek, sales.PeriodMonth, sales.PeriodYear:
	default:
		return sales.Filter{}, fmt.Errorf("unknown period %q", p)
	}

	from, to := sales.RangeFor(p, a.now())
	a.filter = sales.Filter{Period: p, From: from, To: to}
	return a.filter, nil
}

// -- Queries (read-only snapshots for rendering) --

// OrderTab is one entry of the tabs strip.
type OrderTab struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	LineCount int    `json:"lineCount"`
	Active    bool   `json:"active"`
}

// CartView is the active order's cart ready for display.
type CartView struct {
	OrderID     string           `json:"orderId"`
	OrderNumber int              `json:"orderNumber"`
	Items       []order.CartLine `json:"items"`
	Total       float64          `json:"total"`
	ItemCount   int              `json:"itemCount"`
}

func (a *App) OrderTabs() []OrderTab {
	a.mu.Lock()
	defer a.mu.Unlock()

	var tabs []OrderTab
	for _, o := range a.ledger.All() {
		tabs = append(tabs, OrderTab{
			ID:        o.ID,
			Number:    o.Number,
			LineCount: len(o.Items),
			Active:    o.Status == order.StatusActive,
		})
	}
	return tabs
}

func (a *App) Cart() CartView {
	a.mu.Lock()
	defer a.mu.Unlock()

	o := a.ledger.Current()
	if o == nil {
		return CartView{Items: []order.CartLine{}}
	}

	items := make([]order.CartLine, len(o.Items))
	copy(items, o.Items)

	return CartView{
		OrderID:     o.ID,
		OrderNumber: o.Number,
		Items:       items,
		Total:       cart.RoundCents(cart.Total(o)),
		ItemCount:   cart.ItemCount(o),
	}
}

// ChangePreview is the clamped live "change due" amount during a review.
func (a *App) ChangePreview(paid float64) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.workflow.ChangePreview(paid)
}

// SalesHistory loads all sales and applies the active filter, most recent
// first.
func (a *App) SalesHistory(ctx context.Context) ([]sales.Sale, error) {
	a.mu.Lock()
	f := a.filter
	a.mu.Unlock()

	all, err := a.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return f.Apply(all, a.now()), nil
}

// Filter returns the active history filter.
func (a *App) Filter() sales.Filter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}
