package menu

import (
	"fmt"
	"sort"
	"sync"

	"warungpos/internal/poserr"
	"warungpos/internal/sequence"
)

// Catalog owns every Item sold at the counter. All stock changes go
// through it so that stock never drops below zero.
type Catalog struct {
	mu    sync.Mutex
	ids   *sequence.Allocator
	items map[int]*Item
}

// NewCatalog returns an empty catalog that assigns item ids from ids.
func NewCatalog(ids *sequence.Allocator) *Catalog {
	return &Catalog{
		ids:   ids,
		items: make(map[int]*Item),
	}
}

// Add registers an item. A spec carrying an id (loaded from storage) keeps
// it and moves the allocator past it; otherwise a fresh id is assigned.
func (c *Catalog) Add(spec Spec) (*Item, error) {
	if err := ValidateSpec(&spec); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := spec.ID
	if id > 0 {
		if _, exists := c.items[id]; exists {
			return nil, fmt.Errorf("item id %d already registered", id)
		}
		c.ids.Observe(id)
	} else {
		id = c.ids.Next()
	}

	item := &Item{
		id:       id,
		name:     spec.Name,
		category: spec.Category,
		price:    spec.Price,
		attrs:    spec.Attributes,
	}
	item.stock.Store(int64(spec.Stock))
	c.items[id] = item

	return item, nil
}

func (c *Catalog) FindByID(id int) (*Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findLocked(id)
}

// AdjustStock applies delta (positive to restock, negative to sell) and
// returns the new stock. It fails without changing anything if the result
// would be negative.
func (c *Catalog) AdjustStock(id, delta int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adjustLocked(id, delta)
}

// SetStock overwrites the stock level of an item.
func (c *Catalog) SetStock(id, newStock int) error {
	if newStock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", poserr.ErrInvalidQuantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item, err := c.findLocked(id)
	if err != nil {
		return err
	}
	item.stock.Store(int64(newStock))
	return nil
}

// Items returns every item ordered by id.
func (c *Catalog) Items() []*Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].id < out[b].id })
	return out
}

// LowStock returns the items whose stock is below threshold, ordered by id.
func (c *Catalog) LowStock(threshold int) []*Item {
	var out []*Item
	for _, it := range c.Items() {
		if it.Stock() < threshold {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Batch runs fn while holding the catalog lock, so a multi-item check and
// the stock changes that follow it are observed as one step.
func (c *Catalog) Batch(fn func(b *Batch) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&Batch{c: c})
}

// Batch is the view of the catalog available inside Catalog.Batch. It must
// not be retained after fn returns.
type Batch struct {
	c *Catalog
}

func (b *Batch) FindByID(id int) (*Item, error) {
	return b.c.findLocked(id)
}

func (b *Batch) AdjustStock(id, delta int) (int, error) {
	return b.c.adjustLocked(id, delta)
}

func (c *Catalog) findLocked(id int) (*Item, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("menu item %d: %w", id, poserr.ErrNotFound)
	}
	return item, nil
}

func (c *Catalog) adjustLocked(id, delta int) (int, error) {
	item, err := c.findLocked(id)
	if err != nil {
		return 0, err
	}

	next := item.Stock() + delta
	if next < 0 {
		return item.Stock(), fmt.Errorf("%w: %s stock %d cannot change by %d",
			poserr.ErrInvalidQuantity, item.name, item.Stock(), delta)
	}

	item.stock.Store(int64(next))
	return next, nil
}
