package sequence

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocator_Monotonic(t *testing.T) {
	a := New()

	assert.Equal(t, 1, a.Next())
	assert.Equal(t, 2, a.Next())
	assert.Equal(t, 3, a.Peek())
}

func TestAllocator_ObserveSkipsLoadedIDs(t *testing.T) {
	a := New()
	a.Observe(12)

	assert.Equal(t, 13, a.Next())

	// observing an older id must not move the allocator backwards
	a.Observe(4)
	assert.Equal(t, 14, a.Next())
}

func TestAllocator_ConcurrentNextIsUnique(t *testing.T) {
	a := New()
	seen := make(map[int]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := a.Next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}
