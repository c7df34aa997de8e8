package order

import (
	"time"

	"warungpos/internal/sequence"
)

// Clock supplies order creation times.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Factory creates Open orders with ids from its own allocator.
type Factory struct {
	ids   *sequence.Allocator
	clock Clock
}

func NewFactory(ids *sequence.Allocator, clock Clock) *Factory {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Factory{ids: ids, clock: clock}
}

func (f *Factory) New() *Order {
	return &Order{
		id:        f.ids.Next(),
		createdAt: f.clock.Now(),
		status:    StatusOpen,
	}
}

// Observe moves the allocator past ids already used by stored orders.
func (f *Factory) Observe(orders []*Order) {
	for _, o := range orders {
		f.ids.Observe(o.ID())
	}
}
