package order

import (
	"fmt"
	"math"
	"time"

	"warungpos/internal/menu"
	"warungpos/internal/poserr"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusCompleted Status = "COMPLETED"
)

// TaxRate is applied to the subtotal of every order.
var TaxRate = decimal.NewFromFloat(0.10)

// Line is one catalog item in an order. The item is shared with the catalog;
// the line owns the quantity and the unit price taken when it was added.
type Line struct {
	Item     *menu.Item
	Quantity int
	Price    decimal.Decimal
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a cart while Open and an immutable sale once Completed.
type Order struct {
	id            int
	createdAt     time.Time
	status        Status
	lines         []Line
	paymentMethod string
	paymentAmount decimal.Decimal
}

func (o *Order) ID() int                        { return o.id }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) PaymentMethod() string          { return o.paymentMethod }
func (o *Order) PaymentAmount() decimal.Decimal { return o.paymentAmount }
func (o *Order) IsEmpty() bool                  { return len(o.lines) == 0 }

// Lines returns a copy of the order lines in insertion order.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Quantity returns the quantity ordered for itemID, or 0.
func (o *Order) Quantity(itemID int) int {
	if i := o.indexOf(itemID); i >= 0 {
		return o.lines[i].Quantity
	}
	return 0
}

// --------------------------------------------------
// Mutations (Open only)
// --------------------------------------------------

// AddLine adds quantity units of item, merging with an existing line for the
// same item. Stock is not consulted here.
func (o *Order) AddLine(item *menu.Item, quantity int) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", poserr.ErrInvalidQuantity)
	}

	if i := o.indexOf(item.ID()); i >= 0 {
		if quantity > math.MaxInt-o.lines[i].Quantity {
			return fmt.Errorf("%w: %s quantity too large", poserr.ErrInvalidQuantity, item.Name())
		}
		o.lines[i].Quantity += quantity
		return nil
	}

	o.lines = append(o.lines, Line{Item: item, Quantity: quantity, Price: item.Price()})
	return nil
}

// RemoveLine drops the line for itemID. Removing an absent line is a no-op.
func (o *Order) RemoveLine(itemID int) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}

	if i := o.indexOf(itemID); i >= 0 {
		o.lines = append(o.lines[:i], o.lines[i+1:]...)
	}
	return nil
}

// SetQuantity replaces the quantity of an existing line. It does nothing
// when the item is not in the order.
func (o *Order) SetQuantity(itemID, quantity int) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be at least 1", poserr.ErrInvalidQuantity)
	}

	if i := o.indexOf(itemID); i >= 0 {
		o.lines[i].Quantity = quantity
	}
	return nil
}

// Complete closes the order with its payment. Settlement calls it once
// stock has been deducted.
func (o *Order) Complete(method string, amount decimal.Decimal) error {
	if err := o.ensureOpen(); err != nil {
		return err
	}

	o.status = StatusCompleted
	o.paymentMethod = method
	o.paymentAmount = amount
	return nil
}

// --------------------------------------------------
// Totals
// --------------------------------------------------
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (o *Order) Tax() decimal.Decimal {
	return o.Subtotal().Mul(TaxRate)
}

func (o *Order) GrandTotal() decimal.Decimal {
	sub := o.Subtotal()
	return sub.Add(sub.Mul(TaxRate))
}

// Change is what the customer got back. Zero until the order is completed.
func (o *Order) Change() decimal.Decimal {
	if o.status != StatusCompleted {
		return decimal.Zero
	}
	return o.paymentAmount.Sub(o.GrandTotal())
}

func (o *Order) ensureOpen() error {
	if o.status != StatusOpen {
		return fmt.Errorf("%w: order %d is %s", poserr.ErrInvalidState, o.id, o.status)
	}
	return nil
}

func (o *Order) indexOf(itemID int) int {
	for i, l := range o.lines {
		if l.Item.ID() == itemID {
			return i
		}
	}
	return -1
}

// Restore rebuilds a completed order read back from storage.
func Restore(id int, createdAt time.Time, method string, amount decimal.Decimal, lines []Line) *Order {
	return &Order{
		id:            id,
		createdAt:     createdAt,
		status:        StatusCompleted,
		lines:         lines,
		paymentMethod: method,
		paymentAmount: amount,
	}
}
