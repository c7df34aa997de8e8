package poserr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutOfStockError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("settle: %w", &OutOfStockError{ItemID: 3, Name: "Rendang", Requested: 5, Available: 2})

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.NotErrorIs(t, err, ErrInvalidQuantity)

	var oos *OutOfStockError
	require.True(t, errors.As(err, &oos))
	assert.Equal(t, 2, oos.Available)
	assert.Equal(t, "Rendang out of stock! Available: 2", oos.Error())
}

func TestInsufficientPaymentError_CarriesRequired(t *testing.T) {
	err := &InsufficientPaymentError{
		Required: decimal.NewFromInt(55000),
		Tendered: decimal.NewFromInt(50000),
	}

	assert.ErrorIs(t, err, ErrInsufficientPayment)
	assert.Contains(t, err.Error(), "55000.00")
}

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		ErrInvalidQuantity:                400,
		fmt.Errorf("x: %w", ErrNotFound):  404,
		&OutOfStockError{Name: "Pudding"}: 409,
		ErrInvalidState:                   409,
		&InsufficientPaymentError{}:       402,
		ErrEmptyOrder:                     422,
		errors.New("connection reset"):    500,
	}

	for err, want := range cases {
		assert.Equal(t, want, HTTPStatus(err), err.Error())
	}
}
