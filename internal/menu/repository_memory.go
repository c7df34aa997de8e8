package menu

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"warungpos/internal/poserr"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	items  map[int]Spec
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:  make(map[int]Spec),
		nextID: 1,
	}
}

func (r *InMemoryRepository) LoadCatalog(ctx context.Context) ([]Spec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Spec, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r *InMemoryRepository) PersistStockChange(ctx context.Context, itemID int, newStock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("menu item %d: %w", itemID, poserr.ErrNotFound)
	}
	s.Stock = newStock
	r.items[itemID] = s
	return nil
}

func (r *InMemoryRepository) SeedIfEmpty(ctx context.Context, specs []Spec) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) > 0 {
		return 0, nil
	}

	for _, s := range specs {
		s.ID = r.nextID
		r.nextID++
		r.items[s.ID] = s
	}
	return len(specs), nil
}
