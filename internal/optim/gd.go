package optim

import (
	"gonum.org/v1/gonum/floats"
)

// GD implements batch gradient descent.
//
// Update rule:
//
//	d = -g
//	x = x + t*d    // t from the line search (Armijo by default)
//
// Gradient descent converges linearly and is mostly useful as a baseline.
type GD struct {
	config BatchConfig
	ls     LineSearch
}

// NewGD creates a gradient descent optimizer.
func NewGD(config BatchConfig) *GD {
	config = config.withDefaults(LineSearchArmijo, InitQuadratic, 0.1)
	return &GD{config: config, ls: config.lineSearch()}
}

// Minimize implements Batch.
func (o *GD) Minimize(problem *Problem, x0 []float64) *State {
	return minimizeBatch("GD", problem, x0, o.config, o.ls, steepestDescent{})
}

type steepestDescent struct{}

func (steepestDescent) direction(_ int, curr, _ *State) {
	floats.ScaleTo(curr.D, -1, curr.G)
}

func (steepestDescent) accepted(_, _ *State) {}
