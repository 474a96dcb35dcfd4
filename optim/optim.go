// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/minimize/internal/optim"
)

// Problem

// Problem describes a multivariate unconstrained minimization problem.
type Problem = optim.Problem

// SizeFunc returns the problem dimensionality.
type SizeFunc = optim.SizeFunc

// ValueFunc returns the function value at x.
type ValueFunc = optim.ValueFunc

// GradFunc returns the function value at x and writes the gradient into g.
type GradFunc = optim.GradFunc

// NewProblem creates a problem from its oracles.
// If grad is nil the gradient is estimated with central finite differences.
//
// Example:
//
//	problem := optim.NewProblem(
//	    func() int { return 1 },
//	    func(x []float64) float64 { return (x[0] - 3) * (x[0] - 3) },
//	    func(x, g []float64) float64 {
//	        g[0] = 2 * (x[0] - 3)
//	        return (x[0] - 3) * (x[0] - 3)
//	    },
//	)
func NewProblem(size SizeFunc, fval ValueFunc, grad GradFunc) *Problem {
	return optim.NewProblem(size, fval, grad)
}

// State

// State is the optimization state returned by every optimizer.
type State = optim.State

// Status describes why an optimizer stopped.
type Status = optim.Status

// Termination statuses.
const (
	StatusMaxIterations    = optim.StatusMaxIterations
	StatusConverged        = optim.StatusConverged
	StatusLineSearchFailed = optim.StatusLineSearchFailed
)

// NewState evaluates the problem at x0.
func NewState(problem *Problem, x0 []float64) *State {
	return optim.NewState(problem, x0)
}

// Callbacks are the optional hooks invoked by the optimizers.
type Callbacks = optim.Callbacks

// ErrInvalidArgument is returned when a configuration field is out of range.
type ErrInvalidArgument = optim.ErrInvalidArgument

// Line search

// LineSearch finds a step length along a descent direction.
type LineSearch = optim.LineSearch

// LineSearchKind selects a line-search strategy.
type LineSearchKind = optim.LineSearchKind

// InitialStep selects the first trial step of each line search.
type InitialStep = optim.InitialStep

// Step is the outcome of a line search.
type Step = optim.Step

// Line-search strategies and initial step strategies.
const (
	LineSearchDefault     = optim.LineSearchDefault
	LineSearchArmijo      = optim.LineSearchArmijo
	LineSearchStrongWolfe = optim.LineSearchStrongWolfe

	InitDefault   = optim.InitDefault
	InitUnit      = optim.InitUnit
	InitQuadratic = optim.InitQuadratic
)

// Armijo is a backtracking line search on the sufficient decrease condition.
type Armijo = optim.Armijo

// StrongWolfe is a line search on the strong Wolfe conditions.
type StrongWolfe = optim.StrongWolfe

// NewArmijo creates an Armijo line search. Zero arguments select defaults.
func NewArmijo(alpha, beta float64, maxIterations int, cb Callbacks) *Armijo {
	return optim.NewArmijo(alpha, beta, maxIterations, cb)
}

// NewStrongWolfe creates a strong Wolfe line search. Zero arguments select defaults.
func NewStrongWolfe(c1, c2 float64, maxIterations int, cb Callbacks) *StrongWolfe {
	return optim.NewStrongWolfe(c1, c2, maxIterations, cb)
}

// Batch optimizers

// Batch is the common interface of line-search based optimizers.
type Batch = optim.Batch

// BatchKind selects a batch optimizer.
type BatchKind = optim.BatchKind

// BatchConfig holds the configuration shared by batch optimizers.
type BatchConfig = optim.BatchConfig

// Batch optimizer kinds.
const (
	BatchGD      = optim.BatchGD
	BatchCGD     = optim.BatchCGD
	BatchCGDHS   = optim.BatchCGDHS
	BatchCGDFR   = optim.BatchCGDFR
	BatchCGDPRP  = optim.BatchCGDPRP
	BatchCGDCD   = optim.BatchCGDCD
	BatchCGDLS   = optim.BatchCGDLS
	BatchCGDDY   = optim.BatchCGDDY
	BatchCGDN    = optim.BatchCGDN
	BatchCGDDYCD = optim.BatchCGDDYCD
	BatchCGDDYHS = optim.BatchCGDDYHS
	BatchLBFGS   = optim.BatchLBFGS
)

// GD implements batch gradient descent.
type GD = optim.GD

// CGD implements nonlinear conjugate gradient descent.
type CGD = optim.CGD

// BetaRule computes the conjugate gradient coefficient.
type BetaRule = optim.BetaRule

// Conjugate gradient beta rules.
type (
	HestenesStiefel         = optim.HestenesStiefel
	FletcherReeves          = optim.FletcherReeves
	PolakRibiere            = optim.PolakRibiere
	ConjugateDescent        = optim.ConjugateDescent
	LiuStorey               = optim.LiuStorey
	DaiYuan                 = optim.DaiYuan
	HagerZhang              = optim.HagerZhang
	DaiYuanConjugateDescent = optim.DaiYuanConjugateDescent
	DaiYuanHestenesStiefel  = optim.DaiYuanHestenesStiefel
)

// LBFGS implements the limited-memory BFGS method.
type LBFGS = optim.LBFGS

// History is the bounded FIFO of L-BFGS correction pairs.
type History = optim.History

// NewHistory creates an empty history holding at most capacity pairs.
func NewHistory(capacity int) *History {
	return optim.NewHistory(capacity)
}

// NewGD creates a gradient descent optimizer.
func NewGD(config BatchConfig) *GD {
	return optim.NewGD(config)
}

// NewCGD creates a conjugate gradient optimizer with a custom beta rule.
func NewCGD(name string, rule BetaRule, config BatchConfig) *CGD {
	return optim.NewCGD(name, rule, config)
}

// NewLBFGS creates an L-BFGS optimizer.
func NewLBFGS(config BatchConfig) *LBFGS {
	return optim.NewLBFGS(config)
}

// NewBatch creates the batch optimizer of the given kind.
func NewBatch(kind BatchKind, config BatchConfig) (Batch, error) {
	return optim.NewBatch(kind, config)
}

// MinimizeBatch minimizes problem from x0 with the batch optimizer of the given kind.
func MinimizeBatch(kind BatchKind, problem *Problem, x0 []float64, config BatchConfig) (*State, error) {
	return optim.MinimizeBatch(kind, problem, x0, config)
}

// ParseBatchKind returns the batch optimizer with the given name, e.g. "lbfgs".
func ParseBatchKind(name string) (BatchKind, error) {
	return optim.ParseBatchKind(name)
}

// BatchKinds returns all batch optimizers.
func BatchKinds() []BatchKind {
	return optim.BatchKinds()
}

// Stochastic optimizers

// Stoch is the common interface of stochastic optimizers.
type Stoch = optim.Stoch

// StochKind selects a stochastic optimizer.
type StochKind = optim.StochKind

// StochConfig holds the configuration shared by stochastic optimizers.
type StochConfig = optim.StochConfig

// Stochastic optimizer kinds.
const (
	StochSG       = optim.StochSG
	StochSGA      = optim.StochSGA
	StochSIA      = optim.StochSIA
	StochAG       = optim.StochAG
	StochAGGR     = optim.StochAGGR
	StochAdaGrad  = optim.StochAdaGrad
	StochAdaDelta = optim.StochAdaDelta
)

// NewStoch creates the stochastic optimizer of the given kind.
func NewStoch(kind StochKind, config StochConfig) (Stoch, error) {
	return optim.NewStoch(kind, config)
}

// MinimizeStoch minimizes problem from x0 with the stochastic optimizer of the given kind.
func MinimizeStoch(kind StochKind, problem *Problem, x0 []float64, config StochConfig) (*State, error) {
	return optim.MinimizeStoch(kind, problem, x0, config)
}

// ParseStochKind returns the stochastic optimizer with the given name, e.g. "adagrad".
func ParseStochKind(name string) (StochKind, error) {
	return optim.ParseStochKind(name)
}

// StochKinds returns all stochastic optimizers.
func StochKinds() []StochKind {
	return optim.StochKinds()
}

// Decay returns the learning rate alpha0/(iteration+1)^rate.
func Decay(alpha0 float64, iteration int, rate float64) float64 {
	return optim.Decay(alpha0, iteration, rate)
}
