// Package events announces completed sales on Kafka.
package events

import (
	"time"

	"warungpos/internal/order"

	"github.com/shopspring/decimal"
)

type OrderCompletedLine struct {
	ItemID   int             `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type OrderCompletedEvent struct {
	OrderID       int                  `json:"order_id"`
	CreatedAt     time.Time            `json:"created_at"`
	PaymentMethod string               `json:"payment_method"`
	PaymentAmount decimal.Decimal      `json:"payment_amount"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	GrandTotal    decimal.Decimal      `json:"grand_total"`
	Change        decimal.Decimal      `json:"change"`
	Lines         []OrderCompletedLine `json:"lines"`
}

func NewOrderCompletedEvent(o *order.Order) OrderCompletedEvent {
	ev := OrderCompletedEvent{
		OrderID:       o.ID(),
		CreatedAt:     o.CreatedAt(),
		PaymentMethod: o.PaymentMethod(),
		PaymentAmount: o.PaymentAmount(),
		Subtotal:      o.Subtotal(),
		Tax:           o.Tax(),
		GrandTotal:    o.GrandTotal(),
		Change:        o.Change(),
	}
	for _, l := range o.Lines() {
		ev.Lines = append(ev.Lines, OrderCompletedLine{
			ItemID:   l.Item.ID(),
			Name:     l.Item.Name(),
			Quantity: l.Quantity,
			Price:    l.Price,
			Subtotal: l.Subtotal(),
		})
	}
	return ev
}
