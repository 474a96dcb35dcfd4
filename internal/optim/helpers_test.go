package optim_test

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/minimize/internal/optim"
)

// tridiagonal returns the n x n SPD matrix with 3 on the diagonal and -1 on
// the off-diagonals. Its eigenvalues lie in (1, 5).
func tridiagonal(n int) *mat.SymDense {
	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		a.SetSym(i, i, 3)
		if i+1 < n {
			a.SetSym(i, i+1, -1)
		}
	}
	return a
}

// quadratic returns f(x) = 1/2 x'Ax - b'x and its minimizer A^-1 b.
func quadratic(a *mat.SymDense, b []float64) (*optim.Problem, []float64) {
	n := len(b)
	bv := mat.NewVecDense(n, b)

	var want mat.VecDense
	if err := want.SolveVec(a, bv); err != nil {
		panic(err)
	}

	problem := optim.NewProblem(
		func() int { return n },
		func(x []float64) float64 {
			xv := mat.NewVecDense(n, x)
			return 0.5*mat.Inner(xv, a, xv) - floats.Dot(b, x)
		},
		func(x, g []float64) float64 {
			xv := mat.NewVecDense(n, x)
			gv := mat.NewVecDense(n, g)
			gv.MulVec(a, xv)
			gv.SubVec(gv, bv)
			return 0.5*mat.Inner(xv, a, xv) - floats.Dot(b, x)
		},
	)
	return problem, want.RawVector().Data
}

// shiftedSquare returns f(x) = (x - c)^2 in one dimension.
func shiftedSquare(c float64) *optim.Problem {
	return optim.NewProblem(
		func() int { return 1 },
		func(x []float64) float64 { return (x[0] - c) * (x[0] - c) },
		func(x, g []float64) float64 {
			g[0] = 2 * (x[0] - c)
			return (x[0] - c) * (x[0] - c)
		},
	)
}

// rosenbrock returns the 2-D Rosenbrock function.
func rosenbrock() *optim.Problem {
	fval := func(x []float64) float64 {
		a, b := 1-x[0], x[1]-x[0]*x[0]
		return a*a + 100*b*b
	}
	return optim.NewProblem(
		func() int { return 2 },
		fval,
		func(x, g []float64) float64 {
			b := x[1] - x[0]*x[0]
			g[0] = -2*(1-x[0]) - 400*x[0]*b
			g[1] = 200 * b
			return fval(x)
		},
	)
}

// noisySquare returns f(x) = x^2 whose gradient carries additive Gaussian noise.
func noisySquare(seed int64, sigma float64) *optim.Problem {
	rng := rand.New(rand.NewSource(seed))
	return optim.NewProblem(
		func() int { return 1 },
		func(x []float64) float64 { return x[0] * x[0] },
		func(x, g []float64) float64 {
			g[0] = 2*x[0] + sigma*rng.NormFloat64()
			return x[0] * x[0]
		},
	)
}

// sphere returns f(x) = 1/2 |x - c|^2.
func sphere(c []float64) *optim.Problem {
	n := len(c)
	fval := func(x []float64) float64 {
		d := floats.Distance(x, c, 2)
		return 0.5 * d * d
	}
	return optim.NewProblem(
		func() int { return n },
		fval,
		func(x, g []float64) float64 {
			floats.SubTo(g, x, c)
			return fval(x)
		},
	)
}

func wolfeHolds(phi0, dphi0, t, ft, dphit, c1, c2 float64) bool {
	return ft <= phi0+c1*t*dphi0 && math.Abs(dphit) <= -c2*dphi0
}
