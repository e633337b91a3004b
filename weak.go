package laziness

import (
	"runtime"
	"sync"
	"weak"
)

// syncWeak is syncStrong with the value itself held through a weak
// pointer: once the caller drops every reference to the returned value,
// the garbage collector may reclaim it and the next Get recomputes. The
// guarantee is at most one live cached value per receiver, not
// compute-once over the receiver's lifetime. A nil computed value
// references no allocation and is recomputed on every access.
type syncWeak[R, T any] struct {
	init Initializer[R, T]
	mu   sync.RWMutex
	vals map[weak.Pointer[R]]weak.Pointer[T]
}

func newSyncWeak[R, T any](init Initializer[R, T]) *syncWeak[R, T] {
	return &syncWeak[R, T]{
		init: init,
		vals: make(map[weak.Pointer[R]]weak.Pointer[T]),
	}
}

// Get returns the value for receiver, computing it under the cache's
// lock when the entry is absent or its value has been reclaimed.
func (c *syncWeak[R, T]) Get(receiver *R) (*T, error) {
	key := weak.Make(receiver)

	// fast path: the weak pointer must re-resolve to count as a hit
	c.mu.RLock()
	wp, ok := c.vals[key]
	c.mu.RUnlock()
	if ok {
		if v := wp.Value(); v != nil {
			return v, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// check again in case another goroutine inserted while we waited
	if wp, ok := c.vals[key]; ok {
		if v := wp.Value(); v != nil {
			return v, nil
		}
	}

	v, err := c.init(receiver)
	if err != nil {
		return nil, err
	}

	// register the receiver cleanup only once per entry: a recompute
	// after value reclamation reuses the existing registration
	if _, ok := c.vals[key]; !ok {
		runtime.AddCleanup(receiver, c.evict, key)
	}
	c.vals[key] = weak.Make(v)
	return v, nil
}

func (c *syncWeak[R, T]) evict(key weak.Pointer[R]) {
	c.mu.Lock()
	delete(c.vals, key)
	c.mu.Unlock()
}

func (c *syncWeak[R, T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vals)
}

// unsyncWeak combines unsyncStrong's lack of compute serialization with
// syncWeak's reclaimable value storage. The mutex only guards raw map
// access against evict; Get itself is not safe for concurrent use.
type unsyncWeak[R, T any] struct {
	init Initializer[R, T]
	mu   sync.Mutex
	vals map[weak.Pointer[R]]weak.Pointer[T]
}

func newUnsyncWeak[R, T any](init Initializer[R, T]) *unsyncWeak[R, T] {
	return &unsyncWeak[R, T]{
		init: init,
		vals: make(map[weak.Pointer[R]]weak.Pointer[T]),
	}
}

// Get returns the value for receiver, computing it outside any lock
// when the entry is absent or its value has been reclaimed.
func (c *unsyncWeak[R, T]) Get(receiver *R) (*T, error) {
	key := weak.Make(receiver)

	c.mu.Lock()
	wp, ok := c.vals[key]
	c.mu.Unlock()
	if ok {
		if v := wp.Value(); v != nil {
			return v, nil
		}
	}

	v, err := c.init(receiver)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, ok := c.vals[key]; !ok {
		runtime.AddCleanup(receiver, c.evict, key)
	}
	c.vals[key] = weak.Make(v)
	c.mu.Unlock()
	return v, nil
}

func (c *unsyncWeak[R, T]) evict(key weak.Pointer[R]) {
	c.mu.Lock()
	delete(c.vals, key)
	c.mu.Unlock()
}

func (c *unsyncWeak[R, T]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.vals)
}
