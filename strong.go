package laziness

import (
	"runtime"
	"sync"
	"weak"
)

// syncStrong keeps one strongly held value per receiver. Keys are weak
// receiver identities: an entry is removed once its receiver becomes
// unreachable, so the cache never keeps a receiver alive. A cached value
// that itself references its receiver will keep the entry pinned.
type syncStrong[R, T any] struct {
	init Initializer[R, T]
	mu   sync.RWMutex
	vals map[weak.Pointer[R]]*T
}

func newSyncStrong[R, T any](init Initializer[R, T]) *syncStrong[R, T] {
	return &syncStrong[R, T]{
		init: init,
		vals: make(map[weak.Pointer[R]]*T),
	}
}

// Get returns the value for receiver, computing it under the cache's
// lock on first access. The initializer runs exactly once per receiver;
// first accesses for distinct receivers serialize on the same lock.
func (c *syncStrong[R, T]) Get(receiver *R) (*T, error) {
	key := weak.Make(receiver)

	// fast path: read-locked lookup
	c.mu.RLock()
	v, ok := c.vals[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// check again in case another goroutine inserted while we waited
	if v, ok := c.vals[key]; ok {
		return v, nil
	}

	v, err := c.init(receiver)
	if err != nil {
		// entry stays absent so the next call retries
		return nil, err
	}

	c.vals[key] = v
	runtime.AddCleanup(receiver, c.evict, key)
	return v, nil
}

// evict runs on a runtime goroutine once the receiver is unreachable.
func (c *syncStrong[R, T]) evict(key weak.Pointer[R]) {
	c.mu.Lock()
	delete(c.vals, key)
	c.mu.Unlock()
}

func (c *syncStrong[R, T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vals)
}

// unsyncStrong is syncStrong without compute serialization. The mutex
// only keeps raw map access safe against evict, which the runtime calls
// from its own goroutine; Get itself is not safe for concurrent use.
// Under a race the initializer may run more than once for the same
// receiver and the last write wins.
type unsyncStrong[R, T any] struct {
	init Initializer[R, T]
	mu   sync.Mutex
	vals map[weak.Pointer[R]]*T
}

func newUnsyncStrong[R, T any](init Initializer[R, T]) *unsyncStrong[R, T] {
	return &unsyncStrong[R, T]{
		init: init,
		vals: make(map[weak.Pointer[R]]*T),
	}
}

// Get returns the value for receiver, computing it outside any lock on
// first access.
func (c *unsyncStrong[R, T]) Get(receiver *R) (*T, error) {
	key := weak.Make(receiver)

	c.mu.Lock()
	v, ok := c.vals[key]
	c.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := c.init(receiver)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if _, ok := c.vals[key]; !ok {
		runtime.AddCleanup(receiver, c.evict, key)
	}
	c.vals[key] = v
	c.mu.Unlock()
	return v, nil
}

func (c *unsyncStrong[R, T]) evict(key weak.Pointer[R]) {
	c.mu.Lock()
	delete(c.vals, key)
	c.mu.Unlock()
}

func (c *unsyncStrong[R, T]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.vals)
}
