// Package ledger keeps the completed sales of the session and derives the
// figures shown on the sales report.
package ledger

import (
	"fmt"
	"sort"
	"sync"

	"warungpos/internal/order"
	"warungpos/internal/poserr"

	"github.com/shopspring/decimal"
)

// DefaultBestSellerLimit is how many items the sales report ranks.
const DefaultBestSellerLimit = 5

// Ledger is append-only. Recorded orders are Completed and never change.
type Ledger struct {
	mu     sync.RWMutex
	orders []*order.Order
	byID   map[int]*order.Order
}

func New() *Ledger {
	return &Ledger{byID: make(map[int]*order.Order)}
}

// Record appends a completed order. Each order id is recorded once.
func (l *Ledger) Record(o *order.Order) error {
	if o.Status() != order.StatusCompleted {
		return fmt.Errorf("%w: order %d is %s", poserr.ErrInvalidState, o.ID(), o.Status())
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, dup := l.byID[o.ID()]; dup {
		return fmt.Errorf("%w: order %d already recorded", poserr.ErrInvalidState, o.ID())
	}

	l.orders = append(l.orders, o)
	l.byID[o.ID()] = o
	return nil
}

// Load records orders read back from storage, in the order given.
func (l *Ledger) Load(orders []*order.Order) error {
	for _, o := range orders {
		if err := l.Record(o); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

// Find returns a recorded order for reprinting.
func (l *Ledger) Find(orderID int) (*order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	o, ok := l.byID[orderID]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", orderID, poserr.ErrNotFound)
	}
	return o, nil
}

// TotalSales is the sum of grand totals, zero for an empty ledger.
func (l *Ledger) TotalSales() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalLocked()
}

// AverageOrderValue is TotalSales / Count, zero for an empty ledger.
func (l *Ledger) AverageOrderValue() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.averageLocked()
}

func (l *Ledger) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, o := range l.orders {
		total = total.Add(o.GrandTotal())
	}
	return total
}

func (l *Ledger) averageLocked() decimal.Decimal {
	if len(l.orders) == 0 {
		return decimal.Zero
	}
	return l.totalLocked().Div(decimal.NewFromInt(int64(len(l.orders))))
}

// --------------------------------------------------
// Best sellers
// --------------------------------------------------

type BestSeller struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Ranking is the best-seller list. NoData is set when nothing has been sold
// yet, so callers can tell "no sales" from "no items".
type Ranking struct {
	Entries []BestSeller
	NoData  bool
}

// BestSellers ranks item names by total quantity sold, highest first. Ties
// keep the order in which the names were first sold. limit <= 0 returns
// every name.
func (l *Ledger) BestSellers(limit int) Ranking {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.bestSellersLocked(limit)
}

func (l *Ledger) bestSellersLocked(limit int) Ranking {
	if len(l.orders) == 0 {
		return Ranking{Entries: []BestSeller{}, NoData: true}
	}

	index := make(map[string]int)
	var entries []BestSeller
	for _, o := range l.orders {
		for _, line := range o.Lines() {
			name := line.Item.Name()
			i, seen := index[name]
			if !seen {
				i = len(entries)
				index[name] = i
				entries = append(entries, BestSeller{Name: name})
			}
			entries[i].Quantity += line.Quantity
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Quantity > entries[b].Quantity
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return Ranking{Entries: entries}
}

// --------------------------------------------------
// Report
// --------------------------------------------------

type Summary struct {
	OrderCount        int             `json:"order_count"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	BestSellers       []BestSeller    `json:"best_sellers"`
	NoData            bool            `json:"no_data"`
}

// Summary snapshots every report figure under one read lock.
func (l *Ledger) Summary(limit int) Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ranking := l.bestSellersLocked(limit)
	return Summary{
		OrderCount:        len(l.orders),
		TotalSales:        l.totalLocked(),
		AverageOrderValue: l.averageLocked(),
		BestSellers:       ranking.Entries,
		NoData:            ranking.NoData,
	}
}
