package menu

import (
	"strconv"
	"strings"

	"warungpos/internal/money"

	"github.com/shopspring/decimal"
)

func formatPrice(p decimal.Decimal) string {
	return money.Format(p)
}

// Describe renders the one-line menu label for an item, dispatching on its
// category tag.
func Describe(i *Item) string {
	var b strings.Builder

	switch i.category {
	case Food:
		b.WriteString("🍽️ ")
		b.WriteString(i.name)
		if i.attrs.Spiciness > 0 {
			b.WriteString(" 🌶️x")
			b.WriteString(strconv.Itoa(i.attrs.Spiciness))
		}
	case Beverage:
		if i.attrs.Hot {
			b.WriteString("☕ Hot ")
		} else {
			b.WriteString("🧊 Cold ")
		}
		b.WriteString(i.name)
	case Dessert:
		if i.attrs.IceCream {
			b.WriteString("🍨 ")
		} else {
			b.WriteString("🍰 ")
		}
		b.WriteString(i.name)
	default:
		b.WriteString(i.name)
	}

	b.WriteString(" - ")
	b.WriteString(formatPrice(i.price))
	return b.String()
}
