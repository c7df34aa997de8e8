// Package checkout settles carts against the catalog and runs the till.
package checkout

import (
	"fmt"

	"warungpos/internal/menu"
	"warungpos/internal/order"
	"warungpos/internal/poserr"

	"github.com/shopspring/decimal"
)

// Settle takes payment for o, consumes its stock and completes it.
//
// Every check runs before anything is changed: a failed settlement leaves
// the order Open and the catalog untouched. On success the change due is
// returned.
func Settle(o *order.Order, catalog *menu.Catalog, tendered decimal.Decimal, method string) (decimal.Decimal, error) {
	if o.Status() != order.StatusOpen {
		return decimal.Zero, fmt.Errorf("%w: order %d is %s", poserr.ErrInvalidState, o.ID(), o.Status())
	}
	if o.IsEmpty() {
		return decimal.Zero, fmt.Errorf("order %d: %w", o.ID(), poserr.ErrEmptyOrder)
	}

	total := o.GrandTotal()
	if tendered.LessThan(total) {
		return decimal.Zero, &poserr.InsufficientPaymentError{Required: total, Tendered: tendered}
	}

	lines := o.Lines()
	err := catalog.Batch(func(b *menu.Batch) error {
		for _, l := range lines {
			item, err := b.FindByID(l.Item.ID())
			if err != nil {
				return err
			}
			if l.Quantity < 1 {
				return fmt.Errorf("%w: %s quantity %d", poserr.ErrInvalidQuantity, item.Name(), l.Quantity)
			}
			if item.Stock() < l.Quantity {
				return &poserr.OutOfStockError{
					ItemID:    item.ID(),
					Name:      item.Name(),
					Requested: l.Quantity,
					Available: item.Stock(),
				}
			}
		}

		for _, l := range lines {
			if _, err := b.AdjustStock(l.Item.ID(), -l.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	if err := o.Complete(method, tendered); err != nil {
		return decimal.Zero, err
	}
	return tendered.Sub(total), nil
}
