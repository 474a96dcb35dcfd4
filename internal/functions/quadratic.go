package functions

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Tridiagonal returns the n x n symmetric positive definite matrix with 3
// on the diagonal and -1 on the off-diagonals.
func Tridiagonal(n int) *mat.SymDense {
	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		a.SetSym(i, i, 3)
		if i+1 < n {
			a.SetSym(i, i+1, -1)
		}
	}
	return a
}

// Quadratic returns f(x) = 1/2 x'Ax - b'x. A must be symmetric positive
// definite; its minimizer A^-1 b is computed with a Cholesky solve.
func Quadratic(a *mat.SymDense, b []float64) (Function, error) {
	n := len(b)
	if r := a.SymmetricDim(); r != n {
		return nil, errors.Errorf("quadratic: matrix has dimension %d, vector %d", r, n)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return nil, errors.New("quadratic: matrix is not positive definite")
	}
	var xmin mat.VecDense
	if err := chol.SolveVecTo(&xmin, mat.NewVecDense(n, b)); err != nil {
		return nil, errors.Wrap(err, "quadratic: solve")
	}

	bv := mat.NewVecDense(n, b)
	fval := func(x []float64) float64 {
		xv := mat.NewVecDense(n, x)
		return 0.5*mat.Inner(xv, a, xv) - floats.Dot(b, x)
	}
	grad := func(x, g []float64) float64 {
		gv := mat.NewVecDense(n, g)
		gv.MulVec(a, mat.NewVecDense(n, x))
		gv.SubVec(gv, bv)
		return fval(x)
	}
	return newFunction(scalable("Quadratic", n), n, fval, grad, mat.Col(nil, 0, &xmin)), nil
}

// MustQuadratic is like Quadratic but panics on error.
func MustQuadratic(a *mat.SymDense, b []float64) Function {
	f, err := Quadratic(a, b)
	if err != nil {
		panic(err)
	}
	return f
}
