package order

import (
	"context"
	"fmt"
	"time"

	"warungpos/internal/menu"
	"warungpos/internal/poserr"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// PERSIST COMPLETED ORDER (ORDER + LINES, ONE TX)
// --------------------------------------------------
func (r *PostgresRepository) PersistCompletedOrder(ctx context.Context, o *Order) error {
	if o.Status() != StatusCompleted {
		return fmt.Errorf("%w: only completed orders are stored", poserr.ErrInvalidState)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (
			id, created_at, status, payment_method,
			payment_amount, subtotal, tax, grand_total
		)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8::numeric)
	`,
		o.ID(),
		o.CreatedAt(),
		string(o.Status()),
		o.PaymentMethod(),
		o.PaymentAmount().String(),
		o.Subtotal().String(),
		o.Tax().String(),
		o.GrandTotal().String(),
	); err != nil {
		return fmt.Errorf("insert order %d: %w", o.ID(), err)
	}

	for _, l := range o.Lines() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (
				order_id, menu_item_id, menu_item_name,
				quantity, price, subtotal
			)
			VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric)
		`,
			o.ID(),
			l.Item.ID(),
			l.Item.Name(),
			l.Quantity,
			l.Price.String(),
			l.Subtotal().String(),
		); err != nil {
			return fmt.Errorf("insert order %d line %s: %w", o.ID(), l.Item.Name(), err)
		}
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// LOAD COMPLETED ORDERS
// --------------------------------------------------
func (r *PostgresRepository) LoadCompletedOrders(ctx context.Context, catalog *menu.Catalog) ([]*Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			o.id,
			o.created_at,
			o.payment_method,
			o.payment_amount::text,
			oi.menu_item_id,
			oi.quantity,
			oi.price::text
		FROM orders o
		JOIN order_items oi
		  ON oi.order_id = o.id
		WHERE o.status = $1
		ORDER BY o.id, oi.id
	`, string(StatusCompleted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders  []*Order
		current *Order
	)
	for rows.Next() {
		var (
			id        int
			createdAt time.Time
			method    string
			amount    string
			itemID    int
			quantity  int
			price     string
		)
		if err := rows.Scan(&id, &createdAt, &method, &amount, &itemID, &quantity, &price); err != nil {
			return nil, err
		}

		if current == nil || current.ID() != id {
			paid, err := decimal.NewFromString(amount)
			if err != nil {
				return nil, fmt.Errorf("order %d payment amount: %w", id, err)
			}
			current = Restore(id, createdAt, method, paid, nil)
			orders = append(orders, current)
		}

		item, err := catalog.FindByID(itemID)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", id, err)
		}
		unit, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("order %d line %d price: %w", id, itemID, err)
		}
		current.lines = append(current.lines, Line{Item: item, Quantity: quantity, Price: unit})
	}

	return orders, rows.Err()
}
