package laziness

import (
	"runtime"
	"sync/atomic"
	"testing"
)

// benchConfigs covers every strategy the factory can select.
var benchConfigs = []struct {
	name   string
	safety ThreadSafety
	mode   MemoryMode
}{
	{"singleton", Synchronized, Singleton},
	{"synchronized-strong", Synchronized, Strong},
	{"unsynchronized-strong", None, Strong},
	{"synchronized-weak", Synchronized, Weak},
	{"unsynchronized-weak", None, Weak},
}

// =============================================================================
// Hit-path Benchmarks
// =============================================================================

func BenchmarkGet_Hit(b *testing.B) {
	for _, cfg := range benchConfigs {
		b.Run(cfg.name, func(b *testing.B) {
			var count atomic.Int32
			cache := MustNew(cfg.safety, cfg.mode, countingInit(&count))
			res := &resource{id: 1}

			// populate once; holding first pins the value for the weak modes
			first, err := cache.Get(res)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := cache.Get(res); err != nil {
					b.Fatal(err)
				}
			}

			runtime.KeepAlive(first)
		})
	}
}

func BenchmarkGet_Hit_Parallel(b *testing.B) {
	for _, cfg := range benchConfigs {
		if cfg.safety == None {
			continue // unsynchronized caches are not safe for concurrent use
		}
		b.Run(cfg.name, func(b *testing.B) {
			var count atomic.Int32
			cache := MustNew(cfg.safety, cfg.mode, countingInit(&count))
			res := &resource{id: 1}

			first, err := cache.Get(res)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			b.ReportAllocs()

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					if _, err := cache.Get(res); err != nil {
						b.Fatal(err)
					}
				}
			})

			runtime.KeepAlive(first)
		})
	}
}

// =============================================================================
// First-access Benchmarks
// =============================================================================

func BenchmarkGet_FirstAccess(b *testing.B) {
	for _, cfg := range benchConfigs {
		if cfg.mode == Singleton {
			continue // the singleton slot is only ever populated once
		}
		b.Run(cfg.name, func(b *testing.B) {
			var count atomic.Int32
			cache := MustNew(cfg.safety, cfg.mode, countingInit(&count))

			receivers := make([]*resource, b.N)
			for i := range receivers {
				receivers[i] = &resource{id: i}
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := cache.Get(receivers[i]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
