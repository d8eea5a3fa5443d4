// Package parallel runs independent, index-addressed work items on a bounded
// number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how For splits its work.
type Config struct {
	Workers  int // Goroutines to use; fewer than 2 runs sequentially.
	MinItems int // Item count below which work runs sequentially.
}

// Sequential returns a config that never spawns goroutines.
func Sequential() Config {
	return Config{Workers: 1}
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		MinItems: 2,
	}
}

// WithWorkers returns a config using n workers, or the CPU count when n <= 0.
func WithWorkers(n int) Config {
	cfg := DefaultConfig()
	if n > 0 {
		cfg.Workers = n
	}
	return cfg
}

func (c Config) sequential(n int) bool {
	return c.Workers < 2 || n < 2 || n < c.MinItems
}

// For executes f(i) for every i in [0, n) and returns once all calls have
// finished. Items are split into contiguous chunks, one per worker. f must
// be safe to call from several goroutines for distinct i.
func For(n int, f func(i int), cfg Config) {
	if cfg.sequential(n) {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + cfg.Workers - 1) / cfg.Workers

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
