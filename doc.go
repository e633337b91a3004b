// Package laziness provides memoizing lazy-value caches keyed by
// receiver identity.
//
// A cache wraps an [Initializer] and computes its result at most once
// per policy, returning the cached value on later access. The strategy
// is selected at construction along two axes:
//
//   - Thread safety: [Synchronized] serializes initialization through an
//     internal lock; [None] performs no synchronization.
//   - Memory mode: [Strong] keeps one value per receiver for the
//     receiver's lifetime; [Weak] keeps it only while the caller does;
//     [Singleton] shares a single value across all receivers.
//
// # Basic Usage
//
// Create a cache and fetch values per receiver:
//
//	cache := laziness.MustNew(laziness.Synchronized, laziness.Strong,
//	    func(c *Config) (*Schema, error) {
//	        return parseSchema(c)
//	    })
//	schema, err := cache.Get(cfg)
//
// Repeated calls with the same receiver return the same value without
// re-running the initializer. Initializer errors propagate unmodified
// and are not cached: the next call retries.
//
// # Receiver Lifetime
//
// Per-receiver entries are associated weakly with their receiver: the
// cache never keeps a receiver alive, and an entry disappears once its
// receiver becomes unreachable.
//
// # Weak Values
//
// Under [Weak] retention the cache additionally holds the value itself
// through a non-owning reference. Once the caller drops the returned
// pointer, the value may be reclaimed and a later Get recomputes it.
//
// # Concurrency
//
// Caches built with [Synchronized] (and every [Singleton] cache) are
// safe for concurrent use. Caches built with [None] are not: behavior
// under concurrent first access is undefined beyond "the initializer
// may run more than once and the last write wins."
package laziness
