package menu

import "context"

// Repository is the storage side of the catalog. Stock values written here
// are always ones the Catalog has already committed.
type Repository interface {
	LoadCatalog(ctx context.Context) ([]Spec, error)

	PersistStockChange(ctx context.Context, itemID int, newStock int) error

	// SeedIfEmpty inserts specs only when no items exist yet and reports how
	// many were inserted.
	SeedIfEmpty(ctx context.Context, specs []Spec) (int, error)
}
