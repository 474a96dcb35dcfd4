package optim

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// BetaRule computes the conjugate gradient coefficient combining the
// previous direction with the new negative gradient.
//
// prev is the state before the last step (its D is the direction that was
// followed), curr is the state after it.
type BetaRule interface {
	Beta(prev, curr *State) float64
}

// cgdTerms holds the dot products used by the beta rules, with
// g = prev.G, g1 = curr.G, d = prev.D and y = g1 - g.
type cgdTerms struct {
	g1g1 float64
	g1g  float64
	gg   float64
	dg1  float64
	dg   float64
}

func newCGDTerms(prev, curr *State) cgdTerms {
	return cgdTerms{
		g1g1: floats.Dot(curr.G, curr.G),
		g1g:  floats.Dot(curr.G, prev.G),
		gg:   floats.Dot(prev.G, prev.G),
		dg1:  floats.Dot(prev.D, curr.G),
		dg:   floats.Dot(prev.D, prev.G),
	}
}

func (t cgdTerms) g1y() float64 { return t.g1g1 - t.g1g }
func (t cgdTerms) dy() float64  { return t.dg1 - t.dg }
func (t cgdTerms) yy() float64  { return t.g1g1 - 2*t.g1g + t.gg }

// HestenesStiefel (1952): beta = g1.y / d.y
type HestenesStiefel struct{}

func (HestenesStiefel) Beta(prev, curr *State) float64 {
	t := newCGDTerms(prev, curr)
	return t.g1y() / t.dy()
}

// FletcherReeves (1964): beta = |g1|^2 / |g|^2
type FletcherReeves struct{}

func (FletcherReeves) Beta(prev, curr *State) float64 {
	t := newCGDTerms(prev, curr)
	return t.g1g1 / t.gg
}

// PolakRibiere (1969): beta = g1.y / |g|^2
type PolakRibiere struct{}

func (PolakRibiere) Beta(prev, curr *State) float64 {
	t := newCGDTerms(prev, curr)
	return t.g1y() / t.gg
}

// ConjugateDescent (Fletcher, 1987): beta = |g1|^2 / -d.g
type ConjugateDescent struct{}

func (ConjugateDescent) Beta(prev, curr *State) float64 {
	t := newCGDTerms(prev, curr)
	return -t.g1g1 / t.dg
}

// LiuStorey (1991): beta = g1.y / -d.g
type LiuStorey struct{}

func (LiuStorey) Beta(prev, curr *State) float64 {
	t := newCGDTerms(prev, curr)
	return -t.g1y() / t.dg
}

// DaiYuan (1999): beta = |g1|^2 / d.y
type DaiYuan struct{}

func (DaiYuan) Beta(prev, curr *State) float64 {
	t := newCGDTerms(prev, curr)
	return t.g1g1 / t.dy()
}

// HagerZhang (2005): beta = (y - 2*d*|y|^2/d.y).g1 / d.y
type HagerZhang struct{}

func (HagerZhang) Beta(prev, curr *State) float64 {
	t := newCGDTerms(prev, curr)
	dy := t.dy()
	return (t.g1y() - 2*t.dg1*t.yy()/dy) / dy
}

// DaiYuanConjugateDescent is the hybrid max(0, min(DY, CD)).
type DaiYuanConjugateDescent struct{}

func (DaiYuanConjugateDescent) Beta(prev, curr *State) float64 {
	return math.Max(0, math.Min(DaiYuan{}.Beta(prev, curr), ConjugateDescent{}.Beta(prev, curr)))
}

// DaiYuanHestenesStiefel is the hybrid max(0, min(HS, DY)).
type DaiYuanHestenesStiefel struct{}

func (DaiYuanHestenesStiefel) Beta(prev, curr *State) float64 {
	return math.Max(0, math.Min(HestenesStiefel{}.Beta(prev, curr), DaiYuan{}.Beta(prev, curr)))
}

var betaRules = map[BatchKind]BetaRule{
	BatchCGD:     PolakRibiere{},
	BatchCGDHS:   HestenesStiefel{},
	BatchCGDFR:   FletcherReeves{},
	BatchCGDPRP:  PolakRibiere{},
	BatchCGDCD:   ConjugateDescent{},
	BatchCGDLS:   LiuStorey{},
	BatchCGDDY:   DaiYuan{},
	BatchCGDN:    HagerZhang{},
	BatchCGDDYCD: DaiYuanConjugateDescent{},
	BatchCGDDYHS: DaiYuanHestenesStiefel{},
}

// CGD implements nonlinear conjugate gradient descent.
//
// Update rule:
//
//	d_0 = -g_0
//	d_k = -g_k + max(0, beta_k)*d_{k-1}
//	x   = x + t*d    // t from the strong Wolfe line search
//
// The variants differ only in the BetaRule. Clamping beta at zero restarts
// along the steepest descent direction whenever the rule turns negative.
// A non-finite beta (zero denominator) is treated the same way.
//
// Reference: "A survey of nonlinear conjugate gradient methods" (Hager & Zhang, 2006)
type CGD struct {
	name   string
	rule   BetaRule
	config BatchConfig
	ls     LineSearch
}

// NewCGD creates a conjugate gradient optimizer using the given beta rule.
func NewCGD(name string, rule BetaRule, config BatchConfig) *CGD {
	config = config.withDefaults(LineSearchStrongWolfe, InitQuadratic, 0.1)
	return &CGD{name: name, rule: rule, config: config, ls: config.lineSearch()}
}

// Minimize implements Batch.
func (o *CGD) Minimize(problem *Problem, x0 []float64) *State {
	method := &conjugateDirection{rule: o.rule, callbacks: o.config.Callbacks}
	return minimizeBatch(strings.ToUpper(o.name), problem, x0, o.config, o.ls, method)
}

type conjugateDirection struct {
	rule      BetaRule
	callbacks Callbacks
}

func (c *conjugateDirection) direction(i int, curr, prev *State) {
	floats.ScaleTo(curr.D, -1, curr.G)
	if i == 0 {
		return
	}

	beta := c.rule.Beta(prev, curr)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		c.callbacks.warn(fmt.Sprintf("invalid conjugate gradient coefficient %v, reset to steepest descent", beta))
		return
	}
	floats.AddScaled(curr.D, math.Max(0, beta), prev.D)

	if floats.Dot(curr.D, curr.G) > 0 {
		floats.ScaleTo(curr.D, -1, curr.G)
	}
}

func (c *conjugateDirection) accepted(_, _ *State) {}
