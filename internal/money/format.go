// Package money formats rupiah amounts for receipts and item descriptions.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount as "Rp 55,000": rounded to whole rupiah with
// comma thousands separators.
func Format(d decimal.Decimal) string {
	return "Rp " + Grouped(d)
}

// Grouped renders the rounded amount with thousands separators only.
func Grouped(d decimal.Decimal) string {
	whole := d.Round(0)
	if n := whole.BigInt(); n.IsInt64() {
		return printer.Sprintf("%d", n.Int64())
	}
	// beyond int64 the printer would be handed a wrapped value
	return groupDigits(whole.String())
}

func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
