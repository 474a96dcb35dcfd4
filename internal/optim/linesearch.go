package optim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	machineEpsilon = 0x1p-52

	// maxStep caps the bracketing phase of the strong Wolfe line search.
	maxStep = 1000.0
	// stepGrowth is the bracketing expansion factor.
	stepGrowth = 3.0
)

// Step is the outcome of a line search.
//
// T == 0 signals failure. When G is non-nil, F and G hold the function value
// and gradient at x + T*d and can be reused by the caller.
type Step struct {
	T float64
	F float64
	G []float64
}

// Failed reports whether the line search found no acceptable step.
func (s Step) Failed() bool {
	return s.T < machineEpsilon
}

// LineSearch finds a step length along the state's descent direction.
//
// Implementations may replace s.D with the steepest descent direction when
// it is not a descent direction.
type LineSearch interface {
	Search(problem *Problem, s *State, t0 float64) Step
}

// LineSearchKind selects a line-search strategy.
type LineSearchKind int

const (
	// LineSearchDefault lets each optimizer pick its preferred strategy.
	LineSearchDefault LineSearchKind = iota
	// LineSearchArmijo is backtracking on the sufficient decrease condition.
	LineSearchArmijo
	// LineSearchStrongWolfe is bracketing plus zoom on the strong Wolfe conditions.
	LineSearchStrongWolfe
)

// String returns the strategy name.
func (k LineSearchKind) String() string {
	switch k {
	case LineSearchArmijo:
		return "armijo"
	case LineSearchStrongWolfe:
		return "strong-wolfe"
	default:
		return "default"
	}
}

// InitialStep selects how the first trial step of each line search is chosen.
type InitialStep int

const (
	// InitDefault lets each optimizer pick its preferred initializer.
	InitDefault InitialStep = iota
	// InitUnit always starts from t0 = 1.
	InitUnit
	// InitQuadratic reuses the previous decrease: t0 = min(1, 1.01*2*(f - f_prev)/(g.d)).
	InitQuadratic
)

// String returns the initializer name.
func (k InitialStep) String() string {
	switch k {
	case InitUnit:
		return "unit"
	case InitQuadratic:
		return "quadratic"
	default:
		return "default"
	}
}

// initial returns the first trial step for iteration i.
func (k InitialStep) initial(i int, curr, prev *State) float64 {
	if k != InitQuadratic || i == 0 {
		return 1
	}

	dg := floats.Dot(curr.G, curr.D)
	t0 := 1.01 * 2 * (curr.F - prev.F) / dg
	if !(t0 > 0) || math.IsInf(t0, 0) {
		return 1
	}
	return math.Min(1, t0)
}

// descent returns g.d, first resetting d to -g if d is not a descent direction.
func descent(s *State, cb Callbacks) float64 {
	dg := floats.Dot(s.D, s.G)
	if !(dg < 0) {
		cb.warn("not a descent direction, reset to steepest descent")
		floats.ScaleTo(s.D, -1, s.G)
		dg = floats.Dot(s.D, s.G)
	}
	return dg
}

// Armijo is a backtracking line search on the sufficient decrease condition
//
//	f(x + t*d) <= f(x) + Alpha*t*(g.d)
//
// Starting from t0, the step is multiplied by Beta after each failed probe.
// Only function values are evaluated, so the returned Step has no gradient.
type Armijo struct {
	Alpha         float64 // Sufficient decrease constant (default: 0.2)
	Beta          float64 // Shrink factor (default: 0.7)
	MaxIterations int     // Probe budget (default: 64)
	Callbacks     Callbacks
}

// NewArmijo creates an Armijo line search, filling unset fields with defaults.
func NewArmijo(alpha, beta float64, maxIterations int, cb Callbacks) *Armijo {
	if alpha == 0 {
		alpha = 0.2
	}
	if beta == 0 {
		beta = 0.7
	}
	if maxIterations == 0 {
		maxIterations = 64
	}
	return &Armijo{Alpha: alpha, Beta: beta, MaxIterations: maxIterations, Callbacks: cb}
}

// Search implements LineSearch.
func (ls *Armijo) Search(problem *Problem, s *State, t0 float64) Step {
	dg := descent(s, ls.Callbacks)

	xt := make([]float64, len(s.X))
	t := t0
	for i := 0; i < ls.MaxIterations; i++ {
		floats.AddScaledTo(xt, s.X, t, s.D)
		if ft := problem.Value(xt); ft <= s.F+ls.Alpha*t*dg {
			return Step{T: t, F: ft}
		}
		t *= ls.Beta
	}

	return Step{}
}

// StrongWolfe is a line search on the strong Wolfe conditions
//
//	f(x + t*d) <= f(x) + C1*t*(g.d)
//	|g(x + t*d).d| <= -C2*(g.d)
//
// The bracketing phase grows the step by a factor of 3 (capped at 1000)
// until the bracket contains an acceptable step, then the zoom phase bisects
// it (Nocedal & Wright, Numerical Optimization, 2nd ed., algorithms 3.5 and 3.6).
type StrongWolfe struct {
	C1            float64 // Sufficient decrease constant (default: 1e-4)
	C2            float64 // Curvature constant (default: 0.1)
	MaxIterations int     // Probe budget shared by both phases (default: 64)
	Callbacks     Callbacks
}

// NewStrongWolfe creates a strong Wolfe line search, filling unset fields with defaults.
func NewStrongWolfe(c1, c2 float64, maxIterations int, cb Callbacks) *StrongWolfe {
	if c1 == 0 {
		c1 = 1e-4
	}
	if c2 == 0 {
		c2 = 0.1
	}
	if maxIterations == 0 {
		maxIterations = 64
	}
	return &StrongWolfe{C1: c1, C2: c2, MaxIterations: maxIterations, Callbacks: cb}
}

// wolfeProbe evaluates phi(t) = f(x + t*d) and its derivative.
type wolfeProbe struct {
	problem *Problem
	s       *State
	dg0     float64
	xt      []float64
	gt      []float64
	budget  int
}

func (w *wolfeProbe) eval(t float64) (ft, dgt float64) {
	w.budget--
	floats.AddScaledTo(w.xt, w.s.X, t, w.s.D)
	ft = w.problem.ValueGrad(w.xt, w.gt)
	return ft, floats.Dot(w.gt, w.s.D)
}

// Search implements LineSearch.
func (ls *StrongWolfe) Search(problem *Problem, s *State, t0 float64) Step {
	n := len(s.X)
	w := &wolfeProbe{
		problem: problem,
		s:       s,
		dg0:     descent(s, ls.Callbacks),
		xt:      make([]float64, n),
		gt:      make([]float64, n),
		budget:  ls.MaxIterations,
	}

	tprev, fprev := 0.0, s.F
	t := t0
	if !(t > 0) {
		t = 1
	}

	for w.budget > 0 {
		ft, dgt := w.eval(t)
		if ft > s.F+ls.C1*t*w.dg0 || ft >= fprev {
			return ls.zoom(w, tprev, t, fprev)
		}
		if math.Abs(dgt) <= -ls.C2*w.dg0 {
			return Step{T: t, F: ft, G: w.gt}
		}
		if dgt >= 0 {
			return ls.zoom(w, t, tprev, ft)
		}

		tprev, fprev = t, ft
		t = math.Min(maxStep, t*stepGrowth)
	}

	return Step{}
}

// zoom bisects the bracket [tlo, thi] where tlo has the lowest function value
// seen so far among the steps satisfying sufficient decrease.
func (ls *StrongWolfe) zoom(w *wolfeProbe, tlo, thi, flo float64) Step {
	for w.budget > 0 {
		t := (tlo + thi) / 2

		ft, dgt := w.eval(t)
		if ft > w.s.F+ls.C1*t*w.dg0 || ft >= flo {
			thi = t
			continue
		}

		if math.Abs(dgt) <= -ls.C2*w.dg0 {
			return Step{T: t, F: ft, G: w.gt}
		}
		if dgt*(thi-tlo) >= 0 {
			thi = tlo
		}
		tlo, flo = t, ft
	}

	return Step{}
}
