// Package optim implements unconstrained numerical optimization algorithms.
//
// This package provides:
//   - Problem: wraps user supplied size, value and value+gradient oracles
//   - State: current point, function value, gradient and descent direction
//   - Line searches: Armijo backtracking and strong Wolfe bracketing with zoom
//   - Batch optimizers: gradient descent, nonlinear conjugate gradient variants, L-BFGS
//   - Stochastic optimizers: SG, SGA, SIA, AG, AGGR, AdaGrad, AdaDelta
//
// The engine is single-threaded: every outer iteration depends on the gradient
// computed by the previous one. Parallelism belongs inside the oracles.
//
// Example usage:
//
//	problem := optim.NewProblem(
//	    func() int { return 2 },
//	    func(x []float64) float64 { return rosenbrock(x) },
//	    func(x, g []float64) float64 { return rosenbrockGrad(x, g) },
//	)
//
//	state, err := optim.MinimizeBatch(optim.BatchLBFGS, problem, []float64{-1.2, 1},
//	    optim.BatchConfig{MaxIterations: 500, Epsilon: 1e-8})
//	if err != nil {
//	    return err
//	}
//	if state.Status != optim.StatusConverged {
//	    // not converged: state holds the best point found so far
//	}
package optim

// Batch is the common interface of line-search based optimizers.
//
// Minimize runs until the gradient norm drops below the configured epsilon,
// the iteration budget is exhausted or the line search fails. It never
// returns an error: the returned State carries the termination Status.
type Batch interface {
	Minimize(problem *Problem, x0 []float64) *State
}

// Stoch is the common interface of stochastic first-order optimizers.
//
// Minimize runs a fixed number of epochs, each made of EpochSize
// unconditional updates, and reports progress once per epoch.
type Stoch interface {
	Minimize(problem *Problem, x0 []float64) *State
}

// Callbacks are the optional hooks invoked synchronously by the optimizers.
// Nil fields are no-ops.
type Callbacks struct {
	Warn     func(msg string) // Recovered anomalies, e.g. a non-descent direction
	Error    func(msg string) // Failures that stop the run, e.g. a failed line search
	Progress func(s *State)   // Once per iteration (batch) or epoch (stochastic)
}

func (c Callbacks) warn(msg string) {
	if c.Warn != nil {
		c.Warn(msg)
	}
}

func (c Callbacks) error(msg string) {
	if c.Error != nil {
		c.Error(msg)
	}
}

func (c Callbacks) progress(s *State) {
	if c.Progress != nil {
		c.Progress(s)
	}
}
