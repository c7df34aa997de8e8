package order

import (
	"context"

	"warungpos/internal/menu"
)

// Repository stores completed orders. Open carts are never persisted.
type Repository interface {
	// PersistCompletedOrder writes the order and all of its lines atomically.
	PersistCompletedOrder(ctx context.Context, o *Order) error

	// LoadCompletedOrders returns stored orders in id order, with lines bound
	// to the items in catalog.
	LoadCompletedOrders(ctx context.Context, catalog *menu.Catalog) ([]*Order, error)
}
