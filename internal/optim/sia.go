package optim

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// SIA implements stochastic gradient descent with iterate averaging.
//
// Update rule:
//
//	alpha = alpha0 / (k+1)^decay
//	x     = x - alpha * g(x)
//	w     = 1/alpha,  W = W + w
//	xavg  = xavg + (w/W) * (x - xavg)
//
// The descent follows the instantaneous gradient; the averaged iterate xavg
// is what gets reported at the end of each epoch.
type SIA struct {
	config StochConfig
}

// NewSIA creates an iterate averaging optimizer.
func NewSIA(config StochConfig) *SIA {
	return &SIA{config: config.withDefaults()}
}

// Minimize implements Stoch.
func (o *SIA) Minimize(problem *Problem, x0 []float64) *State {
	problem.checkSize(x0)
	method := &siaMethod{
		problem: problem,
		config:  o.config,
		x:       slices.Clone(x0),
		xavg:    slices.Clone(x0),
		g:       make([]float64, len(x0)),
	}
	return minimizeStoch(problem, x0, o.config, method)
}

type siaMethod struct {
	problem    *Problem
	config     StochConfig
	x, xavg, g []float64
	wsum       float64
}

func (m *siaMethod) iterate(k int) {
	m.problem.ValueGrad(m.x, m.g)
	alpha := Decay(m.config.Alpha0, k, m.config.Decay)
	floats.AddScaled(m.x, -alpha, m.g)

	w := 1 / alpha
	m.wsum += w
	r := w / m.wsum
	floats.Scale(1-r, m.xavg)
	floats.AddScaled(m.xavg, r, m.x)
}

func (m *siaMethod) point() []float64 {
	return m.xavg
}
