package optim

import (
	"math"

	"golang.org/x/exp/slices"
)

// AdaGrad implements the adaptive gradient method with per-coordinate
// learning rates.
//
// Update rule:
//
//	G_i = G_i + g_i^2                          // never reset
//	x_i = x_i - alpha0 * g_i / sqrt(G_i + eps)
//
// The effective step size of each coordinate is monotonically non-increasing.
//
// Reference: "Adaptive Subgradient Methods for Online Learning and Stochastic
// Optimization" (Duchi, Hazan & Singer, 2011)
type AdaGrad struct {
	config StochConfig
}

// NewAdaGrad creates an AdaGrad optimizer.
func NewAdaGrad(config StochConfig) *AdaGrad {
	return &AdaGrad{config: config.withDefaults()}
}

// Minimize implements Stoch.
func (o *AdaGrad) Minimize(problem *Problem, x0 []float64) *State {
	problem.checkSize(x0)
	method := newAdaGradMethod(problem, o.config, x0)
	return minimizeStoch(problem, x0, o.config, method)
}

type adagradMethod struct {
	problem *Problem
	config  StochConfig
	x, g    []float64
	sum     []float64 // accumulated squared gradients
}

func newAdaGradMethod(problem *Problem, config StochConfig, x0 []float64) *adagradMethod {
	n := len(x0)
	return &adagradMethod{
		problem: problem,
		config:  config,
		x:       slices.Clone(x0),
		g:       make([]float64, n),
		sum:     make([]float64, n),
	}
}

func (m *adagradMethod) iterate(_ int) {
	m.problem.ValueGrad(m.x, m.g)
	for i, gi := range m.g {
		m.sum[i] += gi * gi
		m.x[i] -= m.rate(i) * gi
	}
}

// rate returns the current effective step size of coordinate i.
func (m *adagradMethod) rate(i int) float64 {
	return m.config.Alpha0 / math.Sqrt(m.sum[i]+m.config.Epsilon)
}

func (m *adagradMethod) point() []float64 {
	return m.x
}
