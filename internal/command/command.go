// Package command is the boundary between the UI and the core: the UI emits
// typed commands, the App applies them as atomic state transitions.
package command

import "time"

type Command interface {
	isCommand()
}

// -- Order tabs --

type NewOrder struct{}

type SwitchOrder struct {
	OrderID string
}

type DeleteOrder struct {
	OrderID string
}

// -- Cart --

type AddItem struct {
	ItemID uint
}

type IncrementLine struct {
	Index int
}

type DecrementLine struct {
	Index int
}

type RemoveLine struct {
	Index int
}

type ClearCart struct{}

// -- Checkout --

type OpenCheckout struct{}

type CancelCheckout struct{}

type ConfirmPayment struct {
	Paid float64
}

// -- Sales history filter --

type SetPeriod struct {
	Period string
}

type SetCustomRange struct {
	From time.Time
	To   time.Time
}

func (NewOrder) isCommand()       {}
func (SwitchOrder) isCommand()    {}
func (DeleteOrder) isCommand()    {}
func (AddItem) isCommand()        {}
func (IncrementLine) isCommand()  {}
func (DecrementLine) isCommand()  {}
func (RemoveLine) isCommand()     {}
func (ClearCart) isCommand()      {}
func (OpenCheckout) isCommand()   {}
func (CancelCheckout) isCommand() {}
func (ConfirmPayment) isCommand() {}
func (SetPeriod) isCommand()      {}
func (SetCustomRange) isCommand() {}
