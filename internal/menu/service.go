package menu

import (
	"context"
	"fmt"

	"warungpos/internal/observability"
	"warungpos/internal/poserr"

	"go.uber.org/zap"
)

// Service fronts the in-memory Catalog with its Repository: every stock
// change is committed in memory first and then written through.
type Service struct {
	catalog           *Catalog
	repo              Repository
	logger            observability.Logger
	lowStockThreshold int
}

func NewService(catalog *Catalog, repo Repository, logger observability.Logger, lowStockThreshold int) *Service {
	return &Service{
		catalog:           catalog,
		repo:              repo,
		logger:            logger,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *Service) Catalog() *Catalog { return s.catalog }

func (s *Service) LowStockThreshold() int { return s.lowStockThreshold }

// --------------------------------------------------
// Bootstrap: seed empty storage, then load it
// --------------------------------------------------
func (s *Service) Bootstrap(ctx context.Context, seed []Spec) error {
	inserted, err := s.repo.SeedIfEmpty(ctx, seed)
	if err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}
	if inserted > 0 {
		s.logger.Info("Seeded menu items", zap.Int("count", inserted))
	}

	specs, err := s.repo.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	for _, spec := range specs {
		if _, err := s.catalog.Add(spec); err != nil {
			return fmt.Errorf("load menu item %d: %w", spec.ID, err)
		}
	}

	s.logger.Info("Catalog loaded", zap.Int("items", s.catalog.Len()))
	return nil
}

// --------------------------------------------------
// Read side
// --------------------------------------------------
func (s *Service) List() []View {
	items := s.catalog.Items()
	views := make([]View, 0, len(items))
	for _, it := range items {
		views = append(views, NewView(it, s.lowStockThreshold))
	}
	return views
}

func (s *Service) Get(id int) (View, error) {
	item, err := s.catalog.FindByID(id)
	if err != nil {
		return View{}, err
	}
	return NewView(item, s.lowStockThreshold), nil
}

func (s *Service) LowStock() []View {
	items := s.catalog.LowStock(s.lowStockThreshold)
	views := make([]View, 0, len(items))
	for _, it := range items {
		views = append(views, NewView(it, s.lowStockThreshold))
	}
	return views
}

// --------------------------------------------------
// Stock changes
// --------------------------------------------------

// Restock adds quantity units to an item's stock.
func (s *Service) Restock(ctx context.Context, id, quantity int) (View, error) {
	if quantity <= 0 {
		return View{}, fmt.Errorf("%w: restock quantity must be greater than 0", poserr.ErrInvalidQuantity)
	}

	newStock, err := s.catalog.AdjustStock(id, quantity)
	if err != nil {
		return View{}, err
	}

	if err := s.persist(ctx, id, newStock); err != nil {
		return View{}, err
	}

	s.logger.Info("Item restocked",
		zap.Int("item_id", id),
		zap.Int("added", quantity),
		zap.Int("stock", newStock),
	)
	return s.Get(id)
}

// SetStock overwrites an item's stock level (stock take).
func (s *Service) SetStock(ctx context.Context, id, stock int) (View, error) {
	if err := s.catalog.SetStock(id, stock); err != nil {
		return View{}, err
	}

	if err := s.persist(ctx, id, stock); err != nil {
		return View{}, err
	}

	s.logger.Info("Item stock set", zap.Int("item_id", id), zap.Int("stock", stock))
	return s.Get(id)
}

// PersistStock writes the catalog's current stock for each id through to
// the repository. Checkout calls it after a settlement commits.
func (s *Service) PersistStock(ctx context.Context, ids ...int) error {
	var firstErr error
	for _, id := range ids {
		item, err := s.catalog.FindByID(id)
		if err != nil {
			return err
		}
		if err := s.persist(ctx, id, item.Stock()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Service) persist(ctx context.Context, id, stock int) error {
	if err := s.repo.PersistStockChange(ctx, id, stock); err != nil {
		s.logger.Error("Failed to persist stock change",
			zap.Int("item_id", id),
			zap.Int("stock", stock),
			zap.Error(err),
		)
		return fmt.Errorf("persist stock for item %d: %w", id, err)
	}
	return nil
}
