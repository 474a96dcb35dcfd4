// Package parallel provides parallel map/reduce helpers for objective oracles.
//
// Optimizers are sequential; the expensive part of a step is usually the
// oracle itself (e.g. a loss summed over a dataset), which is where these
// helpers are meant to be used.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Sequential returns a configuration that disables parallelism.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// chunk is the half-open index range [start, end).
type chunk struct {
	start, end int
}

// chunks splits [0, n) into contiguous ranges, one per goroutine.
// A single chunk is returned when parallelism is disabled or n is too small.
func chunks(n int, cfg Config) []chunk {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2 || n < cfg.MinChunkSize {
		return []chunk{{0, n}}
	}

	size := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
	out := make([]chunk, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		out = append(out, chunk{start, min(start+size, n)})
	}
	return out
}

// run executes f once per chunk, concurrently when there is more than one.
func run(cs []chunk, f func(c int, start, end int)) {
	if len(cs) == 1 {
		f(0, cs[0].start, cs[0].end)
		return
	}

	var wg sync.WaitGroup
	for c, ch := range cs {
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			f(c, s, e)
		}(c, ch.start, ch.end)
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	run(chunks(n, cfg), func(_ int, s, e int) {
		for i := s; i < e; i++ {
			f(i)
		}
	})
}

// Sum returns the sum of f(i) for i in [0, n).
//
// Partial sums are computed per chunk and reduced in chunk order, so the
// result only depends on n and the chunking, not on goroutine scheduling.
func Sum(n int, f func(i int) float64, cfg Config) float64 {
	cs := chunks(n, cfg)
	partial := make([]float64, len(cs))

	run(cs, func(c int, s, e int) {
		var acc float64
		for i := s; i < e; i++ {
			acc += f(i)
		}
		partial[c] = acc
	})

	var total float64
	for _, p := range partial {
		total += p
	}
	return total
}

// SumVec is Sum for an additional vector accumulator of length dim.
//
// f(i, acc) returns the scalar term of item i and adds its vector term into
// acc, a per-chunk buffer. The per-chunk buffers are added into out (which
// is zeroed first) in chunk order. The scalar total is returned.
func SumVec(n, dim int, f func(i int, acc []float64) float64, out []float64, cfg Config) float64 {
	cs := chunks(n, cfg)
	partial := make([]float64, len(cs))
	accs := make([][]float64, len(cs))

	run(cs, func(c int, s, e int) {
		acc := make([]float64, dim)
		var total float64
		for i := s; i < e; i++ {
			total += f(i, acc)
		}
		partial[c], accs[c] = total, acc
	})

	for j := range out {
		out[j] = 0
	}
	var total float64
	for c := range cs {
		total += partial[c]
		for j, v := range accs[c] {
			out[j] += v
		}
	}
	return total
}
