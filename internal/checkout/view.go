package checkout

import (
	"warungpos/internal/money"
	"warungpos/internal/order"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	ItemID   int             `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartView is the open order as shown at the counter.
type CartView struct {
	OrderID    int             `json:"order_id"`
	Lines      []CartLine      `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Display    string          `json:"grand_total_display"`
}

func newCartView(o *order.Order) CartView {
	v := CartView{
		OrderID:    o.ID(),
		Lines:      []CartLine{},
		Subtotal:   o.Subtotal(),
		Tax:        o.Tax(),
		GrandTotal: o.GrandTotal(),
	}
	v.Display = money.Format(v.GrandTotal)

	for _, l := range o.Lines() {
		v.Lines = append(v.Lines, CartLine{
			ItemID:   l.Item.ID(),
			Name:     l.Item.Name(),
			Price:    l.Price,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}
	return v
}
