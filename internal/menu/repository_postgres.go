package menu

import (
	"context"
	"fmt"

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
// LOAD CATALOG
// --------------------------------------------------
func (r *PostgresRepository) LoadCatalog(ctx context.Context) ([]Spec, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, price::text, stock,
		       spicy_level, is_hot, has_ice_cream
		FROM menu_items
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []Spec
	for rows.Next() {
		var (
			s        Spec
			category string
			price    string
		)
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&category,
			&price,
			&s.Stock,
			&s.Attributes.Spiciness,
			&s.Attributes.Hot,
			&s.Attributes.IceCream,
		); err != nil {
			return nil, err
		}

		if s.Category, err = ParseCategory(category); err != nil {
			return nil, fmt.Errorf("menu item %d: %w", s.ID, err)
		}
		if s.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("menu item %d price: %w", s.ID, err)
		}

		specs = append(specs, s)
	}

	return specs, rows.Err()
}

// --------------------------------------------------
// PERSIST STOCK (POST-COMMIT VALUE)
// --------------------------------------------------
func (r *PostgresRepository) PersistStockChange(ctx context.Context, itemID int, newStock int) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET stock = $1,
		    updated_at = now()
		WHERE id = $2
	`, newStock, itemID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", itemID, poserr.ErrNotFound)
	}
	return nil
}

// --------------------------------------------------
// SEED (ONLY WHEN EMPTY)
// --------------------------------------------------
func (r *PostgresRepository) SeedIfEmpty(ctx context.Context, specs []Spec) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	// serialize concurrent seeders on the table itself
	if _, err := tx.Exec(ctx, `LOCK TABLE menu_items IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return 0, err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, s := range specs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_items (
				name, category, price, stock,
				spicy_level, is_hot, has_ice_cream
			)
			VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)
		`,
			s.Name,
			string(s.Category),
			s.Price.String(),
			s.Stock,
			s.Attributes.Spiciness,
			s.Attributes.Hot,
			s.Attributes.IceCream,
		); err != nil {
			return 0, fmt.Errorf("seed %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(specs), nil
}
