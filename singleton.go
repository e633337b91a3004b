package laziness

import (
	"sync"
	"sync/atomic"
)

// singletonCache holds one shared slot for all receivers. The receiver
// is accepted but not used as a key; the first receiver to arrive is the
// one the initializer sees.
type singletonCache[R, T any] struct {
	init Initializer[R, T] // nilled out after the first successful run
	mu   sync.Mutex
	slot atomic.Pointer[box[T]]
}

// box wraps a computed value so that a nil or zero result is still
// distinguishable from "not yet computed": slot presence is pointer
// identity on the box, never a comparison against the value.
type box[T any] struct {
	val *T
}

// Get returns the shared value, computing it from receiver on first
// access. The initializer runs at most once for the lifetime of the
// cache: after the first successful run its reference is discarded, so
// even a long-retained cache cannot invoke it again.
func (c *singletonCache[R, T]) Get(receiver *R) (*T, error) {
	// fast path: the slot is published atomically, no lock needed
	if b := c.slot.Load(); b != nil {
		return b.val, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// check again in case another goroutine initialized while we waited
	if b := c.slot.Load(); b != nil {
		return b.val, nil
	}

	val, err := c.init(receiver)
	if err != nil {
		// slot stays unset so the next call retries
		return nil, err
	}

	c.slot.Store(&box[T]{val: val})
	c.init = nil
	return val, nil
}
