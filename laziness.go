package laziness

import "errors"

// ThreadSafety selects how a cache serializes initialization and storage
// mutation across goroutines.
type ThreadSafety int

const (
	// Synchronized serializes initializer invocation and storage mutation
	// through an internal lock. This is the default.
	Synchronized ThreadSafety = iota
	// None performs no synchronization of initialization. Caches built
	// with None are only safe for single-goroutine or externally
	// synchronized use.
	None
)

// String returns the name of the thread-safety mode.
func (s ThreadSafety) String() string {
	switch s {
	case Synchronized:
		return "synchronized"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// MemoryMode selects how a cache retains computed values.
type MemoryMode int

const (
	// Strong retains one value per receiver for as long as the receiver
	// itself is alive. This is the default.
	Strong MemoryMode = iota
	// Weak retains one value per receiver only while the value is
	// referenced outside the cache; a reclaimed value is recomputed on
	// the next access.
	Weak
	// Singleton retains a single shared value for all receivers,
	// computed from whichever receiver arrives first.
	Singleton
)

// String returns the name of the memory mode.
func (m MemoryMode) String() string {
	switch m {
	case Strong:
		return "strong"
	case Weak:
		return "weak"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// Initializer computes the value for a receiver. It is invoked at most
// once per successful computation; whether it can run more than once for
// the same receiver depends on the cache's configuration. An error
// returned by the initializer propagates unmodified to the caller of
// [Cache.Get] and leaves the receiver's slot uninitialized, so a later
// call retries.
type Initializer[R, T any] func(r *R) (*T, error)

// Cache memoizes the result of an [Initializer] keyed by receiver
// identity. A Cache must be created with [New] or [MustNew].
//
// The returned pointer is the cached allocation itself: under [Weak]
// retention it is the caller's references to that pointer that keep the
// value cached.
type Cache[R, T any] interface {
	// Get returns the computed value for receiver, invoking the
	// initializer on first access. Any error is the initializer's own,
	// returned unmodified.
	Get(receiver *R) (*T, error)
}

// New creates a Cache with the given thread-safety and memory mode.
// The initializer is required; everything else has a usable default
// (the zero values Synchronized and Strong). Unrecognized mode values
// select the defaults.
//
// The strategy is fixed at construction:
//
//   - [Singleton]: one shared value for all receivers, thread-safe
//     regardless of the safety argument.
//   - [Strong] + [Synchronized]: one value per receiver, computed
//     exactly once per receiver under an internal lock.
//   - [Strong] + [None]: one value per receiver, no compute
//     serialization; concurrent first access may compute more than once
//     and the last write wins.
//   - [Weak] + [Synchronized]: as Strong+Synchronized, but the value may
//     be reclaimed once the caller drops it and is then recomputed.
//   - [Weak] + [None]: as Strong+None with reclaimable values.
func New[R, T any](safety ThreadSafety, mode MemoryMode, init Initializer[R, T]) (Cache[R, T], error) {
	if init == nil {
		return nil, errors.New("initializer must not be nil")
	}

	switch mode {
	case Singleton:
		return &singletonCache[R, T]{init: init}, nil
	case Weak:
		if safety == None {
			return newUnsyncWeak(init), nil
		}
		return newSyncWeak(init), nil
	default:
		if safety == None {
			return newUnsyncStrong(init), nil
		}
		return newSyncStrong(init), nil
	}
}

// MustNew creates a Cache with the given thread-safety and memory mode.
// It panics if the initializer is nil.
func MustNew[R, T any](safety ThreadSafety, mode MemoryMode, init Initializer[R, T]) Cache[R, T] {
	cache, err := New(safety, mode, init)
	if err != nil {
		panic(err)
	}
	return cache
}
