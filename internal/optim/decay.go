package optim

import "math"

// Decay returns the learning rate for the given iteration:
//
//	alpha = alpha0 / (iteration + 1)^rate
//
// rate is expected in [0, 1]; rate = 0 yields a constant learning rate.
func Decay(alpha0 float64, iteration int, rate float64) float64 {
	return alpha0 / math.Pow(float64(iteration+1), rate)
}
