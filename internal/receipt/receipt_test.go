package receipt

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"warungpos/internal/menu"
	"warungpos/internal/order"
	"warungpos/internal/sequence"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantReceipt = `
╔════════════════════════════════════╗
║     WARUNG PADANG SEDERHANA       ║
║      Jl. Merdeka No. 123          ║
╠════════════════════════════════════╣
  Order #0007
  Fri Mar 01 12:30:00 UTC 2024
────────────────────────────────────
Nasi Goreng             2x    Rp 50,000
Es Teh Manis            1x     Rp 5,000
────────────────────────────────────
Subtotal:                         Rp 55,000
Tax (10%):                         Rp 5,500
────────────────────────────────────
TOTAL:                            Rp 60,500
Payment (Cash):                  Rp 100,000
Change:                           Rp 39,500
────────────────────────────────────
    Terima Kasih! 🙏
    Selamat Menikmati! 😋
╚════════════════════════════════════╝
`

var defaultHeader = Header{StoreName: "WARUNG PADANG SEDERHANA", Address: "Jl. Merdeka No. 123"}

func completedOrder(t *testing.T) *order.Order {
	t.Helper()

	catalog := menu.NewCatalog(sequence.New())
	nasi, err := catalog.Add(menu.FoodSpec("Nasi Goreng", 25000, 50, 2))
	require.NoError(t, err)
	teh, err := catalog.Add(menu.BeverageSpec("Es Teh Manis", 5000, 100, false))
	require.NoError(t, err)

	ids := sequence.New()
	ids.Observe(6)
	clock := order.ClockFunc(func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) })
	o := order.NewFactory(ids, clock).New()

	require.NoError(t, o.AddLine(nasi, 2))
	require.NoError(t, o.AddLine(teh, 1))
	require.NoError(t, o.Complete("Cash", decimal.NewFromInt(100000)))
	return o
}

func TestRender(t *testing.T) {
	got := Render(completedOrder(t), defaultHeader)
	assert.Equal(t, wantReceipt, got)
}

func TestRender_FixedWidthRows(t *testing.T) {
	got := Render(completedOrder(t), defaultHeader)

	for _, line := range strings.Split(strings.TrimSpace(got), "\n") {
		switch {
		case strings.HasPrefix(line, "Subtotal:"), strings.HasPrefix(line, "TOTAL:"), strings.HasPrefix(line, "Change:"):
			assert.Equal(t, 43, utf8.RuneCountInString(line), line)
		case strings.HasPrefix(line, "Nasi Goreng"):
			assert.Equal(t, 39, utf8.RuneCountInString(line), line)
		}
	}
}
