// Package functions provides test objectives with known minima, used to
// benchmark and tune the optimizers.
package functions

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minimize/internal/optim"
)

// Function is a test objective with analytic gradient and known minima.
type Function interface {
	// Name returns a unique name including the dimension, e.g. "Rosenbrock[4D]".
	Name() string
	// Size returns the problem dimension.
	Size() int
	// Problem returns a fresh Problem with zeroed call counters.
	Problem() *optim.Problem
	// Minima returns the known global minimizers. May be empty.
	Minima() [][]float64
	// IsMinimum reports whether x is within epsilon (max norm) of a known minimizer.
	IsMinimum(x []float64, epsilon float64) bool
}

// function implements Function from its oracles.
type function struct {
	name   string
	size   int
	fval   optim.ValueFunc
	grad   optim.GradFunc
	minima [][]float64
}

func newFunction(name string, size int, fval optim.ValueFunc, grad optim.GradFunc, minima ...[]float64) *function {
	return &function{name: name, size: size, fval: fval, grad: grad, minima: minima}
}

// scalable names a function defined for any dimension.
func scalable(name string, n int) string {
	return fmt.Sprintf("%s[%dD]", name, n)
}

func (f *function) Name() string { return f.name }

func (f *function) Size() int { return f.size }

func (f *function) Problem() *optim.Problem {
	n := f.size
	return optim.NewProblem(func() int { return n }, f.fval, f.grad)
}

func (f *function) Minima() [][]float64 { return f.minima }

func (f *function) IsMinimum(x []float64, epsilon float64) bool {
	for _, m := range f.minima {
		if len(m) == len(x) && floats.Distance(x, m, math.Inf(1)) < epsilon {
			return true
		}
	}
	return false
}

// Make returns the standard benchmark set: the fixed-dimension functions
// once, and the scalable ones for every dimension in [minDims, maxDims],
// doubling from minDims.
func Make(minDims, maxDims int) []Function {
	funcs := []Function{
		Bohachevsky1(),
		Bohachevsky2(),
		Bohachevsky3(),
		Booth(),
		Beale(),
		Matyas(),
	}

	for n := max(minDims, 1); n <= maxDims; n *= 2 {
		funcs = append(funcs,
			Sphere(n),
			MustQuadratic(Tridiagonal(n), ones(n)),
			Zakharov(n),
		)
		if n >= 2 {
			funcs = append(funcs,
				Rosenbrock(n),
				Trid(n),
				DixonPrice(n),
			)
		}
	}
	return funcs
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// Find returns the function called name in the benchmark set of the given
// dimension. Scalable functions may be named with or without their
// dimension suffix, e.g. "Rosenbrock" or "Rosenbrock[4D]".
func Find(name string, dims int) (Function, error) {
	for _, f := range Make(dims, dims) {
		if f.Name() == name || f.Name() == scalable(name, dims) {
			return f, nil
		}
	}
	return nil, errors.Errorf("unknown function %q for %d dimensions", name, dims)
}
