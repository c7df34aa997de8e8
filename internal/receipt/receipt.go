// Package receipt renders completed orders as fixed-width plain text.
package receipt

import (
	"fmt"
	"strings"

	"warungpos/internal/money"
	"warungpos/internal/order"

	"github.com/shopspring/decimal"
)

// TimeLayout is the timestamp format printed under the order number.
const TimeLayout = "Mon Jan 02 15:04:05 MST 2006"

var (
	boxTop    = "╔" + strings.Repeat("═", 36) + "╗"
	boxMiddle = "╠" + strings.Repeat("═", 36) + "╣"
	boxBottom = "╚" + strings.Repeat("═", 36) + "╝"
	separator = strings.Repeat("─", 36)
)

// Header is the store banner printed at the top of every receipt.
type Header struct {
	StoreName string
	Address   string
}

// Render prints the receipt for o. Change is only meaningful for completed
// orders; an open order prints zero.
func Render(o *order.Order, h Header) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(boxTop + "\n")
	fmt.Fprintf(&b, "║     %-30s║\n", h.StoreName)
	fmt.Fprintf(&b, "║      %-29s║\n", h.Address)
	b.WriteString(boxMiddle + "\n")
	fmt.Fprintf(&b, "  Order #%04d\n", o.ID())
	b.WriteString("  " + o.CreatedAt().Format(TimeLayout) + "\n")
	b.WriteString(separator + "\n")

	for _, l := range o.Lines() {
		fmt.Fprintf(&b, "%-20s %4dx %12s\n", l.Item.Name(), l.Quantity, money.Format(l.Subtotal()))
	}

	b.WriteString(separator + "\n")
	total(&b, "Subtotal:", o.Subtotal())
	total(&b, "Tax (10%):", o.Tax())
	b.WriteString(separator + "\n")
	total(&b, "TOTAL:", o.GrandTotal())
	total(&b, "Payment ("+o.PaymentMethod()+"):", o.PaymentAmount())
	total(&b, "Change:", o.Change())
	b.WriteString(separator + "\n")
	b.WriteString("    Terima Kasih! 🙏\n")
	b.WriteString("    Selamat Menikmati! 😋\n")
	b.WriteString(boxBottom + "\n")

	return b.String()
}

func total(b *strings.Builder, label string, amount decimal.Decimal) {
	fmt.Fprintf(b, "%-30s %12s\n", label, money.Format(amount))
}
