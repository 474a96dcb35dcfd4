package optim

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// SG implements stochastic gradient descent with a decaying learning rate.
//
// Update rule:
//
//	alpha = alpha0 / (k+1)^decay
//	x     = x - alpha * g(x)
//
// Example:
//
//	sg := optim.NewSG(optim.StochConfig{
//	    Epochs:    50,
//	    EpochSize: 100,
//	    Alpha0:    0.1,
//	    Decay:     0.5,
//	})
//	state := sg.Minimize(problem, x0)
type SG struct {
	config StochConfig
}

// NewSG creates a stochastic gradient descent optimizer.
func NewSG(config StochConfig) *SG {
	return &SG{config: config.withDefaults()}
}

// Minimize implements Stoch.
func (o *SG) Minimize(problem *Problem, x0 []float64) *State {
	problem.checkSize(x0)
	method := &sgMethod{
		problem: problem,
		config:  o.config,
		x:       slices.Clone(x0),
		g:       make([]float64, len(x0)),
	}
	return minimizeStoch(problem, x0, o.config, method)
}

type sgMethod struct {
	problem *Problem
	config  StochConfig
	x, g    []float64
}

func (m *sgMethod) iterate(k int) {
	m.problem.ValueGrad(m.x, m.g)
	alpha := Decay(m.config.Alpha0, k, m.config.Decay)
	floats.AddScaled(m.x, -alpha, m.g)
}

func (m *sgMethod) point() []float64 {
	return m.x
}
