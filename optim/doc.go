// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides unconstrained numerical optimization algorithms.
//
// # Overview
//
// This package contains:
//   - Problem: user supplied objective (size, value and value+gradient oracles)
//   - State: current point, function value, gradient and descent direction
//   - Batch optimizers: GD, nonlinear conjugate gradient (CGD) variants, L-BFGS
//   - Stochastic optimizers: SG, SGA, SIA, AG, AGGR, AdaGrad, AdaDelta
//   - Line searches: Armijo backtracking and strong Wolfe
//
// # Basic Usage
//
//	import "github.com/born-ml/minimize/optim"
//
//	func main() {
//	    problem := optim.NewProblem(
//	        func() int { return 2 },
//	        func(x []float64) float64 { return x[0]*x[0] + 10*x[1]*x[1] },
//	        func(x, g []float64) float64 {
//	            g[0], g[1] = 2*x[0], 20*x[1]
//	            return x[0]*x[0] + 10*x[1]*x[1]
//	        },
//	    )
//
//	    state, err := optim.MinimizeBatch(optim.BatchLBFGS, problem, []float64{1, 1},
//	        optim.BatchConfig{MaxIterations: 100, Epsilon: 1e-8})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(state.Status, state.X, state.F)
//	}
//
// # Batch Optimizers
//
// Batch optimizers stop when the gradient norm drops below Epsilon, when
// MaxIterations is reached or when the line search fails:
//
//	gd := optim.NewGD(optim.BatchConfig{LineSearch: optim.LineSearchArmijo})
//	cgd, err := optim.NewBatch(optim.BatchCGDPRP, optim.BatchConfig{})
//	lbfgs := optim.NewLBFGS(optim.BatchConfig{HistorySize: 10})
//
// # Stochastic Optimizers
//
// Stochastic optimizers run a fixed number of epochs with a decaying
// learning rate alpha0/(k+1)^decay:
//
//	sg := optim.NewSG(optim.StochConfig{
//	    Epochs:    50,
//	    EpochSize: 100,
//	    Alpha0:    0.1,
//	    Decay:     0.5,
//	})
//	state := sg.Minimize(problem, x0)
//
// # Progress Reporting
//
// Warnings, failures and per-iteration progress are delivered through
// Callbacks; all hooks are optional:
//
//	config := optim.BatchConfig{
//	    Callbacks: optim.Callbacks{
//	        Progress: func(s *optim.State) { fmt.Println(s.Iterations, s.F) },
//	    },
//	}
package optim
