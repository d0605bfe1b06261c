package command

import (
	"context"
	"testing"
	"time"

	"resto-pos/internal/cart"
	"resto-pos/internal/checkout"
	"resto-pos/internal/menu"
	"resto-pos/internal/order"
	"resto-pos/internal/sales"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) CreateItem(ctx context.Context, item menu.Item) (menu.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(menu.Item), args.Error(1)
}

func (m *MockMenuService) UpdateItem(ctx context.Context, item menu.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuService) ListItems(ctx context.Context) ([]menu.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.Item), args.Error(1)
}

func (m *MockMenuService) DeleteItem(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) Append(ctx context.Context, sale sales.Sale) (uint, error) {
	args := m.Called(ctx, sale)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockSalesRepository) ListAll(ctx context.Context) ([]sales.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSalesRepository) Upsert(ctx context.Context, sale sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

var theMenu = []menu.Item{
	{ID: 1, Name: "Tacos", Price: 25.00, Type: menu.TypeDish},
	{ID: 2, Name: "Limonada", Price: 10.50, Type: menu.TypeDrink},
}

func newApp() (*App, *MockMenuService, *MockSalesRepository) {
	menuSvc := new(MockMenuService)
	salesRepo := new(MockSalesRepository)
	return NewApp(menuSvc, salesRepo), menuSvc, salesRepo
}

func TestApp_StartsWithOneOrder(t *testing.T) {
	app, _, _ := newApp()

	tabs := app.OrderTabs()
	require.Len(t, tabs, 1)
	assert.True(t, tabs[0].Active)
	assert.Equal(t, 1, tabs[0].Number)
}

func TestApp_OrderCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("NewOrder parks the current one", func(t *testing.T) {
		app, _, _ := newApp()

		res, err := app.Dispatch(ctx, NewOrder{})
		require.NoError(t, err)
		o := res.(*order.Order)
		assert.Equal(t, 2, o.Number)

		tabs := app.OrderTabs()
		require.Len(t, tabs, 2)
		assert.False(t, tabs[0].Active)
		assert.True(t, tabs[1].Active)
	})

	t.Run("SwitchOrder", func(t *testing.T) {
		app, _, _ := newApp()
		first := app.OrderTabs()[0]
		_, err := app.Dispatch(ctx, NewOrder{})
		require.NoError(t, err)

		_, err = app.Dispatch(ctx, SwitchOrder{OrderID: first.ID})
		require.NoError(t, err)
		assert.Equal(t, first.Number, app.Cart().OrderNumber)

		_, err = app.Dispatch(ctx, SwitchOrder{OrderID: "missing"})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("DeleteOrder never empties the ledger", func(t *testing.T) {
		app, _, _ := newApp()
		only := app.OrderTabs()[0]

		_, err := app.Dispatch(ctx, DeleteOrder{OrderID: only.ID})
		require.NoError(t, err)

		tabs := app.OrderTabs()
		require.Len(t, tabs, 1)
		assert.NotEqual(t, only.ID, tabs[0].ID)
	})
}

func TestApp_CartCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("AddItem snapshots from the catalog", func(t *testing.T) {
		app, menuSvc, _ := newApp()
		menuSvc.On("ListItems", ctx).Return(theMenu, nil)

		_, err := app.Dispatch(ctx, AddItem{ItemID: 1})
		require.NoError(t, err)
		_, err = app.Dispatch(ctx, AddItem{ItemID: 1})
		require.NoError(t, err)
		_, err = app.Dispatch(ctx, AddItem{ItemID: 2})
		require.NoError(t, err)

		view := app.Cart()
		require.Len(t, view.Items, 2)
		assert.Equal(t, 3, view.ItemCount)
		assert.InDelta(t, 60.50, view.Total, 0.005)
	})

	t.Run("AddItem unknown id", func(t *testing.T) {
		app, menuSvc, _ := newApp()
		menuSvc.On("ListItems", ctx).Return(theMenu, nil)

		_, err := app.Dispatch(ctx, AddItem{ItemID: 99})
		assert.ErrorIs(t, err, menu.ErrItemNotFound)
		assert.Empty(t, app.Cart().Items)
	})

	t.Run("Line commands", func(t *testing.T) {
		app, menuSvc, _ := newApp()
		menuSvc.On("ListItems", ctx).Return(theMenu, nil)

		_, err := app.Dispatch(ctx, AddItem{ItemID: 1})
		require.NoError(t, err)

		_, err = app.Dispatch(ctx, IncrementLine{Index: 0})
		require.NoError(t, err)
		assert.Equal(t, 2, app.Cart().Items[0].Qty)

		_, err = app.Dispatch(ctx, DecrementLine{Index: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, app.Cart().Items[0].Qty)

		_, err = app.Dispatch(ctx, DecrementLine{Index: 0})
		require.NoError(t, err)
		assert.Empty(t, app.Cart().Items)

		_, err = app.Dispatch(ctx, IncrementLine{Index: 0})
		assert.ErrorIs(t, err, cart.ErrIndexOutOfRange)
	})

	t.Run("ClearCart on empty order", func(t *testing.T) {
		app, _, _ := newApp()

		_, err := app.Dispatch(ctx, ClearCart{})
		assert.ErrorIs(t, err, cart.ErrCartEmpty)
	})
}

func TestApp_CheckoutCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("Full checkout round trip", func(t *testing.T) {
		app, menuSvc, salesRepo := newApp()
		menuSvc.On("ListItems", ctx).Return(theMenu, nil)

		_, err := app.Dispatch(ctx, AddItem{ItemID: 1})
		require.NoError(t, err)
		_, err = app.Dispatch(ctx, AddItem{ItemID: 1})
		require.NoError(t, err)

		res, err := app.Dispatch(ctx, OpenCheckout{})
		require.NoError(t, err)
		review := res.(checkout.Review)
		assert.InDelta(t, 50.00, review.Total, 0.005)

		assert.InDelta(t, 0.00, app.ChangePreview(40.00), 0.005)
		assert.InDelta(t, 10.00, app.ChangePreview(60.00), 0.005)

		salesRepo.On("Append", ctx, mock.AnythingOfType("sales.Sale")).Return(uint(1), nil).Once()

		res, err = app.Dispatch(ctx, ConfirmPayment{Paid: 60.00})
		require.NoError(t, err)
		confirmed := res.(ConfirmResult)
		assert.InDelta(t, 10.00, confirmed.Sale.Change, 0.005)
		assert.Empty(t, confirmed.NewOrder.Items)

		tabs := app.OrderTabs()
		require.Len(t, tabs, 1)
		assert.True(t, tabs[0].Active)
		assert.Equal(t, 2, tabs[0].Number)
	})

	t.Run("OpenCheckout with empty cart", func(t *testing.T) {
		app, _, _ := newApp()

		_, err := app.Dispatch(ctx, OpenCheckout{})
		assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	})

	t.Run("Underpayment leaves everything intact", func(t *testing.T) {
		app, menuSvc, salesRepo := newApp()
		menuSvc.On("ListItems", ctx).Return(theMenu, nil)

		_, err := app.Dispatch(ctx, AddItem{ItemID: 1})
		require.NoError(t, err)
		_, err = app.Dispatch(ctx, OpenCheckout{})
		require.NoError(t, err)

		_, err = app.Dispatch(ctx, ConfirmPayment{Paid: 10.00})

		var insufficient *checkout.InsufficientPaymentError
		require.ErrorAs(t, err, &insufficient)
		assert.InDelta(t, 15.00, insufficient.Deficit, 0.005)
		assert.Len(t, app.Cart().Items, 1)
		salesRepo.AssertNotCalled(t, "Append")
	})

	t.Run("Cancel keeps the cart", func(t *testing.T) {
		app, menuSvc, _ := newApp()
		menuSvc.On("ListItems", ctx).Return(theMenu, nil)

		_, err := app.Dispatch(ctx, AddItem{ItemID: 1})
		require.NoError(t, err)
		_, err = app.Dispatch(ctx, OpenCheckout{})
		require.NoError(t, err)

		_, err = app.Dispatch(ctx, CancelCheckout{})
		require.NoError(t, err)
		assert.Len(t, app.Cart().Items, 1)
	})
}

func TestApp_FilterCommands(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	t.Run("Preset resets the custom range", func(t *testing.T) {
		app, _, _ := newApp()
		app.now = func() time.Time { return now }

		res, err := app.Dispatch(ctx, SetPeriod{Period: "week"})
		require.NoError(t, err)
		f := res.(sales.Filter)
		assert.Equal(t, sales.PeriodWeek, f.Period)
		assert.Equal(t, time.Date(2024, 6, 8, 0, 0, 0, 0, time.Local), f.From)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local), f.To)
	})

	t.Run("Unknown period", func(t *testing.T) {
		app, _, _ := newApp()

		_, err := app.Dispatch(ctx, SetPeriod{Period: "fortnight"})
		assert.Error(t, err)
	})

	t.Run("Manual range switches to custom", func(t *testing.T) {
		app, _, _ := newApp()

		_, err := app.Dispatch(ctx, SetPeriod{Period: "month"})
		require.NoError(t, err)

		from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
		to := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
		_, err = app.Dispatch(ctx, SetCustomRange{From: from, To: to})
		require.NoError(t, err)

		assert.Equal(t, sales.PeriodCustom, app.Filter().Period)
	})

	t.Run("SalesHistory applies the filter most recent first", func(t *testing.T) {
		app, _, salesRepo := newApp()
		app.now = func() time.Time { return now }

		all := []sales.Sale{
			{ID: 1, CreatedAt: now.AddDate(0, 0, -40)},
			{ID: 2, CreatedAt: now.Add(-2 * time.Hour)},
			{ID: 3, CreatedAt: now.AddDate(0, 0, -3)},
		}
		salesRepo.On("ListAll", ctx).Return(all, nil).Once()

		_, err := app.Dispatch(ctx, SetPeriod{Period: "week"})
		require.NoError(t, err)

		got, err := app.SalesHistory(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, uint(2), got[0].ID)
		assert.Equal(t, uint(3), got[1].ID)
	})
}

func TestApp_UnknownCommand(t *testing.T) {
	app, _, _ := newApp()

	type bogus struct{ Command }
	_, err := app.Dispatch(context.Background(), bogus{})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
