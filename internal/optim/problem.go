package optim

import (
	"fmt"
	"math"
	"sync/atomic"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// finiteDiffStep is the central difference step used when no analytic
// gradient is available.
const finiteDiffStep = 1e-6

// SizeFunc returns the dimensionality of the problem.
type SizeFunc func() int

// ValueFunc returns the function value at x.
type ValueFunc func(x []float64) float64

// GradFunc returns the function value at x and writes the gradient into g.
// g always has the problem dimension.
type GradFunc func(x, g []float64) float64

// Problem describes a multivariate unconstrained minimization problem.
//
// The oracles may be expensive (e.g. a full-batch loss over a dataset) and,
// for stochastic optimizers, may return a different random estimate on each
// call. Call counters are updated atomically so a Problem can be shared by
// optimizer runs executing on different goroutines.
type Problem struct {
	size   SizeFunc
	fval   ValueFunc
	grad   GradFunc
	fcalls atomic.Int64
	gcalls atomic.Int64
}

// NewProblem creates a problem from its oracles.
//
// If grad is nil the gradient is estimated with central finite differences,
// which costs 2n value evaluations per gradient.
func NewProblem(size SizeFunc, fval ValueFunc, grad GradFunc) *Problem {
	if size == nil || fval == nil {
		panic("optim: problem requires size and value oracles")
	}
	return &Problem{size: size, fval: fval, grad: grad}
}

// Size returns the problem dimensionality.
func (p *Problem) Size() int {
	return p.size()
}

// Value evaluates the function at x.
func (p *Problem) Value(x []float64) float64 {
	p.checkSize(x)
	p.fcalls.Add(1)
	return p.fval(x)
}

// ValueGrad evaluates the function and its gradient at x.
// The gradient is written into g, which must have length Size().
func (p *Problem) ValueGrad(x, g []float64) float64 {
	p.checkSize(x)
	p.checkSize(g)
	p.gcalls.Add(1)
	if p.grad != nil {
		return p.grad(x, g)
	}
	p.numericalGrad(x, g)
	return p.Value(x)
}

// HasGradient reports whether an analytic gradient oracle was supplied.
func (p *Problem) HasGradient() bool {
	return p.grad != nil
}

// FCalls returns the number of value evaluations so far.
func (p *Problem) FCalls() int {
	return int(p.fcalls.Load())
}

// GCalls returns the number of value+gradient evaluations so far.
func (p *Problem) GCalls() int {
	return int(p.gcalls.Load())
}

// GradAccuracy returns the largest absolute difference between the analytic
// gradient at x and its central finite difference estimate.
func (p *Problem) GradAccuracy(x []float64) float64 {
	n := p.Size()
	ga := make([]float64, n)
	gn := make([]float64, n)

	p.ValueGrad(x, ga)
	p.numericalGrad(x, gn)

	return floats.Distance(ga, gn, math.Inf(1))
}

func (p *Problem) numericalGrad(x, g []float64) {
	xx := slices.Clone(x)
	for i := range xx {
		xi := xx[i]

		xx[i] = xi + finiteDiffStep
		fp := p.Value(xx)
		xx[i] = xi - finiteDiffStep
		fn := p.Value(xx)
		xx[i] = xi

		g[i] = (fp - fn) / (2 * finiteDiffStep)
	}
}

func (p *Problem) checkSize(x []float64) {
	if n := p.Size(); len(x) != n {
		panic(fmt.Sprintf("optim: vector has dimension %d, problem has %d", len(x), n))
	}
}
