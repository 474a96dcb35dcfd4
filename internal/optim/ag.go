package optim

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// AG implements stochastic Nesterov accelerated gradient.
//
// Update rule (k counted from 1 since the last restart):
//
//	alpha = alpha0 / (k+1)^decay
//	x_k   = y - alpha * g(y)
//	m_k   = (k-1) / (k+2)
//	y     = x_k + m_k * (x_k - x_{k-1})
//
// With Restart enabled (AGGR) the momentum is reset whenever the gradient
// at the lookahead point makes an acute angle with the last move,
// g(y).(x_k - x_{k-1}) > 0.
//
// The classic stochastic formulation keeps alpha = alpha0; here the rate
// follows Decay like the other methods, and Decay = 0 gives the constant rate.
//
// References:
//   - "A method of solving a convex programming problem with convergence rate O(1/k^2)" (Nesterov, 1983)
//   - "Adaptive Restart for Accelerated Gradient Schemes" (O'Donoghue & Candes, 2013)
type AG struct {
	config  StochConfig
	restart bool
}

// NewAG creates an accelerated gradient optimizer, with gradient based
// restarts when restart is true.
func NewAG(config StochConfig, restart bool) *AG {
	return &AG{config: config.withDefaults(), restart: restart}
}

// Minimize implements Stoch.
func (o *AG) Minimize(problem *Problem, x0 []float64) *State {
	problem.checkSize(x0)
	n := len(x0)
	method := &agMethod{
		problem: problem,
		config:  o.config,
		restart: o.restart,
		x:       slices.Clone(x0),
		px:      slices.Clone(x0),
		y:       slices.Clone(x0),
		g:       make([]float64, n),
		dx:      make([]float64, n),
	}
	return minimizeStoch(problem, x0, o.config, method)
}

type agMethod struct {
	problem *Problem
	config  StochConfig
	restart bool

	x, px, y, g, dx []float64
	since           int // iteration index of the last restart
}

func (m *agMethod) iterate(k int) {
	m.problem.ValueGrad(m.y, m.g)
	alpha := Decay(m.config.Alpha0, k, m.config.Decay)

	floats.AddScaledTo(m.x, m.y, -alpha, m.g)
	floats.SubTo(m.dx, m.x, m.px)

	kk := float64(k - m.since + 1)
	momentum := (kk - 1) / (kk + 2)
	floats.AddScaledTo(m.y, m.x, momentum, m.dx)

	if m.restart && floats.Dot(m.g, m.dx) > 0 {
		copy(m.y, m.x)
		m.since = k + 1
	}

	copy(m.px, m.x)
}

func (m *agMethod) point() []float64 {
	return m.x
}
