// Package poserr holds the business error kinds shared by the catalog,
// cart, settlement and ledger packages.
package poserr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrOutOfStock          = errors.New("out of stock")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrInvalidState        = errors.New("invalid order state")
	ErrNotFound            = errors.New("not found")
)

// OutOfStockError names the item that could not be satisfied.
type OutOfStockError struct {
	ItemID    int
	Name      string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s out of stock! Available: %d", e.Name, e.Available)
}

func (e *OutOfStockError) Is(target error) bool {
	return target == ErrOutOfStock
}

// InsufficientPaymentError carries the amount that would have settled the order.
type InsufficientPaymentError struct {
	Required decimal.Decimal
	Tendered decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: required %s, tendered %s",
		e.Required.StringFixed(2), e.Tendered.StringFixed(2))
}

func (e *InsufficientPaymentError) Is(target error) bool {
	return target == ErrInsufficientPayment
}
