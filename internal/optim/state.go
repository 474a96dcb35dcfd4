package optim

import (
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
)

// Status describes why an optimizer stopped.
type Status int

const (
	// StatusMaxIterations means the iteration or epoch budget was exhausted.
	StatusMaxIterations Status = iota
	// StatusConverged means the gradient norm dropped below epsilon.
	StatusConverged
	// StatusLineSearchFailed means no step satisfied the line-search conditions.
	// Near a minimizer this also happens once f changes by less than its
	// float64 resolution, with a tiny epsilon.
	StatusLineSearchFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusMaxIterations:
		return "max-iterations"
	case StatusConverged:
		return "converged"
	case StatusLineSearchFailed:
		return "linesearch-failed"
	default:
		return "unknown"
	}
}

// State is the optimization state: current point (X), function value (F),
// gradient (G) and the last chosen descent direction (D).
//
// A State is owned by a single optimizer run. Snapshots are taken with Clone,
// which deep copies the vectors.
type State struct {
	X []float64
	G []float64
	D []float64
	F float64

	Iterations int
	FCalls     int // Problem value evaluations when the state was last updated
	GCalls     int // Problem gradient evaluations when the state was last updated
	Status     Status
}

// NewState evaluates the problem at x0.
//
// Panics if len(x0) does not match the problem dimension.
func NewState(problem *Problem, x0 []float64) *State {
	n := problem.Size()
	problem.checkSize(x0)

	s := &State{
		X: slices.Clone(x0),
		G: make([]float64, n),
		D: make([]float64, n),
	}
	s.F = problem.ValueGrad(s.X, s.G)
	s.syncCalls(problem)
	return s
}

// Update moves t along the descent direction and re-evaluates the problem.
func (s *State) Update(problem *Problem, t float64) {
	floats.AddScaled(s.X, t, s.D)
	s.F = problem.ValueGrad(s.X, s.G)
	s.Iterations++
	s.syncCalls(problem)
}

// UpdateWith moves t along the descent direction reusing the function value
// and gradient already computed at the new point (e.g. by the line search).
func (s *State) UpdateWith(problem *Problem, t, ft float64, gt []float64) {
	floats.AddScaled(s.X, t, s.D)
	s.F = ft
	copy(s.G, gt)
	s.Iterations++
	s.syncCalls(problem)
}

// MoveTo sets the current point to x and re-evaluates the problem.
// The iteration counter is left untouched.
func (s *State) MoveTo(problem *Problem, x []float64) {
	copy(s.X, x)
	s.F = problem.ValueGrad(s.X, s.G)
	s.syncCalls(problem)
}

// GradNorm returns the Euclidean norm of the gradient.
func (s *State) GradNorm() float64 {
	return floats.Norm(s.G, 2)
}

// Converged reports whether the gradient norm is below epsilon.
func (s *State) Converged(epsilon float64) bool {
	return s.GradNorm() < epsilon
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.X = slices.Clone(s.X)
	c.G = slices.Clone(s.G)
	c.D = slices.Clone(s.D)
	return &c
}

// CopyFrom overwrites s with the contents of other, reusing s's buffers.
func (s *State) CopyFrom(other *State) {
	x, g, d := s.X, s.G, s.D
	*s = *other
	s.X = append(x[:0], other.X...)
	s.G = append(g[:0], other.G...)
	s.D = append(d[:0], other.D...)
}

// Better reports whether s has a strictly lower function value than other.
// Non-finite values compare as +Inf.
func (s *State) Better(other *State) bool {
	return finiteOrInf(s.F) < finiteOrInf(other.F)
}

func (s *State) syncCalls(problem *Problem) {
	s.FCalls = problem.FCalls()
	s.GCalls = problem.GCalls()
}

func finiteOrInf(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return math.Inf(1)
	}
	return f
}
