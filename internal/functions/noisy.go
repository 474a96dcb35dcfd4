package functions

import (
	"math/rand"
	"sync"
)

// NoisySphere returns f(x) = 1/2 |x|^2 whose gradient oracle adds Gaussian
// noise with standard deviation sigma, as seen by stochastic optimizers.
// The value oracle is exact. The noise source is seeded and safe for
// concurrent use.
func NoisySphere(n int, sigma float64, seed int64) Function {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))

	fval := func(x []float64) float64 {
		var f float64
		for _, xi := range x {
			f += xi * xi
		}
		return 0.5 * f
	}
	grad := func(x, g []float64) float64 {
		mu.Lock()
		for i, xi := range x {
			g[i] = xi + sigma*rng.NormFloat64()
		}
		mu.Unlock()
		return fval(x)
	}
	return newFunction(scalable("NoisySphere", n), n, fval, grad, make([]float64, n))
}
