package optim

import (
	"gonum.org/v1/gonum/floats"
)

// History is a bounded FIFO of (s, y) correction pairs, s = x_{k+1} - x_k
// and y = g_{k+1} - g_k. Once Cap pairs are stored, pushing a new pair
// evicts the oldest one.
type History struct {
	s        [][]float64
	y        [][]float64
	capacity int
}

// NewHistory creates an empty history holding at most capacity pairs.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		panic("optim: history capacity must be positive")
	}
	return &History{
		s:        make([][]float64, 0, capacity+1),
		y:        make([][]float64, 0, capacity+1),
		capacity: capacity,
	}
}

// Push appends a pair, evicting the oldest one when the history is full.
// The history takes ownership of s and y.
func (h *History) Push(s, y []float64) {
	h.s = append(h.s, s)
	h.y = append(h.y, y)
	if len(h.s) > h.capacity {
		copy(h.s, h.s[1:])
		copy(h.y, h.y[1:])
		h.s[len(h.s)-1] = nil
		h.y[len(h.y)-1] = nil
		h.s = h.s[:len(h.s)-1]
		h.y = h.y[:len(h.y)-1]
	}
}

// Len returns the number of stored pairs.
func (h *History) Len() int {
	return len(h.s)
}

// Cap returns the maximum number of stored pairs.
func (h *History) Cap() int {
	return h.capacity
}

// At returns the i-th pair, 0 being the oldest.
func (h *History) At(i int) (s, y []float64) {
	return h.s[i], h.y[i]
}

// LBFGS implements the limited-memory BFGS quasi-Newton method.
//
// The inverse Hessian approximation is applied implicitly to the gradient
// with the two-loop recursion over the last HistorySize (s, y) pairs
// (Nocedal & Wright, Numerical Optimization, 2nd ed., algorithm 7.4):
//
//	q = g
//	for j = newest..oldest:  a_j = s_j.q / s_j.y_j;  q = q - a_j*y_j
//	r = (s.y / y.y)*q                                  // newest pair
//	for j = oldest..newest:  b = y_j.r / s_j.y_j;    r = r + s_j*(a_j - b)
//	d = -r
//
// The strong Wolfe line search uses a loose curvature constant (C2 = 0.9)
// so the unit step is usually accepted.
type LBFGS struct {
	config BatchConfig
	ls     LineSearch
}

// NewLBFGS creates an L-BFGS optimizer.
func NewLBFGS(config BatchConfig) *LBFGS {
	config = config.withDefaults(LineSearchStrongWolfe, InitUnit, 0.9)
	return &LBFGS{config: config, ls: config.lineSearch()}
}

// Minimize implements Batch.
func (o *LBFGS) Minimize(problem *Problem, x0 []float64) *State {
	n := problem.Size()
	method := &quasiNewtonDirection{
		history: NewHistory(o.config.HistorySize),
		q:       make([]float64, n),
		alphas:  make([]float64, o.config.HistorySize),
	}
	return minimizeBatch("LBFGS", problem, x0, o.config, o.ls, method)
}

type quasiNewtonDirection struct {
	history *History
	q       []float64
	alphas  []float64
}

func (l *quasiNewtonDirection) direction(_ int, curr, _ *State) {
	h := l.history
	m := h.Len()

	copy(l.q, curr.G)
	for j := m - 1; j >= 0; j-- {
		s, y := h.At(j)
		alpha := floats.Dot(s, l.q) / floats.Dot(s, y)
		floats.AddScaled(l.q, -alpha, y)
		l.alphas[j] = alpha
	}

	r := curr.D
	if m == 0 {
		copy(r, l.q)
	} else {
		s, y := h.At(m - 1)
		floats.ScaleTo(r, floats.Dot(s, y)/floats.Dot(y, y), l.q)
	}

	for j := 0; j < m; j++ {
		s, y := h.At(j)
		beta := floats.Dot(y, r) / floats.Dot(s, y)
		floats.AddScaled(r, l.alphas[j]-beta, s)
	}

	floats.Scale(-1, r)
}

func (l *quasiNewtonDirection) accepted(prev, curr *State) {
	n := len(curr.X)
	s := make([]float64, n)
	y := make([]float64, n)
	floats.SubTo(s, curr.X, prev.X)
	floats.SubTo(y, curr.G, prev.G)
	l.history.Push(s, y)
}
