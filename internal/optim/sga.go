package optim

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// SGA implements stochastic gradient descent along a running average of
// the past gradients.
//
// Update rule:
//
//	alpha = alpha0 / (k+1)^decay
//	w     = 1/alpha,  W = W + w
//	gavg  = gavg + (w/W) * (g(x) - gavg)
//	x     = x - alpha * gavg
//
// Weighting by 1/alpha favours recent gradients as the rate decays. The
// average trades gradient variance for lag.
type SGA struct {
	config StochConfig
}

// NewSGA creates a gradient averaging optimizer.
func NewSGA(config StochConfig) *SGA {
	return &SGA{config: config.withDefaults()}
}

// Minimize implements Stoch.
func (o *SGA) Minimize(problem *Problem, x0 []float64) *State {
	problem.checkSize(x0)
	n := len(x0)
	method := &sgaMethod{
		problem: problem,
		config:  o.config,
		x:       slices.Clone(x0),
		g:       make([]float64, n),
		gavg:    make([]float64, n),
	}
	return minimizeStoch(problem, x0, o.config, method)
}

type sgaMethod struct {
	problem    *Problem
	config     StochConfig
	x, g, gavg []float64
	wsum       float64
}

func (m *sgaMethod) iterate(k int) {
	m.problem.ValueGrad(m.x, m.g)
	alpha := Decay(m.config.Alpha0, k, m.config.Decay)

	w := 1 / alpha
	m.wsum += w
	r := w / m.wsum
	floats.Scale(1-r, m.gavg)
	floats.AddScaled(m.gavg, r, m.g)

	floats.AddScaled(m.x, -alpha, m.gavg)
}

func (m *sgaMethod) point() []float64 {
	return m.x
}
