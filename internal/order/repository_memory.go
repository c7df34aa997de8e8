package order

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"warungpos/internal/menu"
	"warungpos/internal/poserr"

	"github.com/shopspring/decimal"
)

type storedLine struct {
	itemID   int
	quantity int
	price    decimal.Decimal
}

type storedOrder struct {
	id        int
	createdAt time.Time
	method    string
	amount    decimal.Decimal
	lines     []storedLine
}

type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[int]storedOrder
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[int]storedOrder)}
}

func (r *InMemoryRepository) PersistCompletedOrder(ctx context.Context, o *Order) error {
	if o.Status() != StatusCompleted {
		return fmt.Errorf("%w: only completed orders are stored", poserr.ErrInvalidState)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID()]; exists {
		return fmt.Errorf("order %d already stored", o.ID())
	}

	s := storedOrder{
		id:        o.ID(),
		createdAt: o.CreatedAt(),
		method:    o.PaymentMethod(),
		amount:    o.PaymentAmount(),
	}
	for _, l := range o.Lines() {
		s.lines = append(s.lines, storedLine{itemID: l.Item.ID(), quantity: l.Quantity, price: l.Price})
	}
	r.orders[s.id] = s
	return nil
}

func (r *InMemoryRepository) LoadCompletedOrders(ctx context.Context, catalog *menu.Catalog) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Order, 0, len(r.orders))
	for _, s := range r.orders {
		lines := make([]Line, 0, len(s.lines))
		for _, sl := range s.lines {
			item, err := catalog.FindByID(sl.itemID)
			if err != nil {
				return nil, fmt.Errorf("order %d: %w", s.id, err)
			}
			lines = append(lines, Line{Item: item, Quantity: sl.quantity, Price: sl.price})
		}
		out = append(out, Restore(s.id, s.createdAt, s.method, s.amount, lines))
	}

	sort.Slice(out, func(a, b int) bool { return out[a].ID() < out[b].ID() })
	return out, nil
}
