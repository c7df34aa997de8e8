// Package sequence hands out process-local integer ids.
//
// An Allocator is created once at process start and owned by whatever
// creates the entities (the catalog for items, the order factory for
// orders). It is never reset mid-session, so an id is never handed out twice.
package sequence

import "sync"

type Allocator struct {
	mu   sync.Mutex
	next int
}

// New returns an allocator whose first id is 1.
func New() *Allocator {
	return &Allocator{next: 1}
}

// Next returns the next unused id.
func (a *Allocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.next
	a.next++
	return id
}

// Observe records an id that was assigned elsewhere (loaded from storage)
// so that Next never returns it or anything below it.
func (a *Allocator) Observe(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id >= a.next {
		a.next = id + 1
	}
}

// Peek reports the id Next would return without consuming it.
func (a *Allocator) Peek() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}
