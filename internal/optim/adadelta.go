package optim

import (
	"math"

	"golang.org/x/exp/slices"
)

// AdaDelta implements AdaGrad with exponentially decayed accumulators in
// place of the cumulative sum.
//
// Update rule:
//
//	E[g^2]  = rho * E[g^2] + (1-rho) * g^2
//	dx      = -sqrt(E[dx^2] + eps) / sqrt(E[g^2] + eps) * g
//	E[dx^2] = rho * E[dx^2] + (1-rho) * dx^2
//	x       = x + alpha0 * dx
//
// Alpha0 = 1 gives Zeiler's unit-free rule.
//
// Reference: "ADADELTA: An Adaptive Learning Rate Method" (Zeiler, 2012)
type AdaDelta struct {
	config StochConfig
}

// NewAdaDelta creates an AdaDelta optimizer.
func NewAdaDelta(config StochConfig) *AdaDelta {
	return &AdaDelta{config: config.withDefaults()}
}

// Minimize implements Stoch.
func (o *AdaDelta) Minimize(problem *Problem, x0 []float64) *State {
	problem.checkSize(x0)
	n := len(x0)
	method := &adadeltaMethod{
		problem: problem,
		config:  o.config,
		x:       slices.Clone(x0),
		g:       make([]float64, n),
		eg2:     make([]float64, n),
		edx2:    make([]float64, n),
	}
	return minimizeStoch(problem, x0, o.config, method)
}

type adadeltaMethod struct {
	problem   *Problem
	config    StochConfig
	x, g      []float64
	eg2, edx2 []float64
}

func (m *adadeltaMethod) iterate(_ int) {
	m.problem.ValueGrad(m.x, m.g)

	rho, eps := m.config.Rho, m.config.Epsilon
	for i, gi := range m.g {
		m.eg2[i] = rho*m.eg2[i] + (1-rho)*gi*gi
		dx := -math.Sqrt(m.edx2[i]+eps) / math.Sqrt(m.eg2[i]+eps) * gi
		m.edx2[i] = rho*m.edx2[i] + (1-rho)*dx*dx
		m.x[i] += m.config.Alpha0 * dx
	}
}

func (m *adadeltaMethod) point() []float64 {
	return m.x
}
