package functions

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/minimize/internal/parallel"
)

// Dataset is a linear regression dataset: one sample per row of A with
// target B[i].
type Dataset struct {
	A *mat.Dense
	B []float64
}

// SyntheticDataset draws rows x n standard normal samples and noise-free
// targets from random weights, which are returned as well.
func SyntheticDataset(rows, n int, seed int64) (Dataset, []float64) {
	rng := rand.New(rand.NewSource(seed))

	w := make([]float64, n)
	for i := range w {
		w[i] = rng.NormFloat64()
	}

	a := mat.NewDense(rows, n, nil)
	b := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := a.RawRowView(i)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		b[i] = floats.Dot(row, w)
	}
	return Dataset{A: a, B: b}, w
}

// LeastSquares returns the mean squared error objective
//
//	f(w) = 1/(2m) sum_i (a_i.w - b_i)^2
//	g(w) = 1/m sum_i (a_i.w - b_i) a_i
//
// Both oracles are evaluated over the rows with parallel reductions.
// The minimizer is the least squares solution of A w = b.
func LeastSquares(data Dataset, cfg parallel.Config) (Function, error) {
	m, n := data.A.Dims()
	if len(data.B) != m {
		return nil, errors.Errorf("least squares: %d samples, %d targets", m, len(data.B))
	}
	if m < n {
		return nil, errors.Errorf("least squares: %d samples for %d weights", m, n)
	}

	var wmin mat.VecDense
	if err := wmin.SolveVec(data.A, mat.NewVecDense(m, data.B)); err != nil {
		return nil, errors.Wrap(err, "least squares: solve")
	}

	scale := 1 / float64(m)
	residual := func(i int, w []float64) float64 {
		return floats.Dot(data.A.RawRowView(i), w) - data.B[i]
	}

	fval := func(w []float64) float64 {
		sum := parallel.Sum(m, func(i int) float64 {
			r := residual(i, w)
			return r * r
		}, cfg)
		return 0.5 * scale * sum
	}
	grad := func(w, g []float64) float64 {
		sum := parallel.SumVec(m, n, func(i int, acc []float64) float64 {
			r := residual(i, w)
			floats.AddScaled(acc, r, data.A.RawRowView(i))
			return r * r
		}, g, cfg)
		floats.Scale(scale, g)
		return 0.5 * scale * sum
	}

	return newFunction(scalable("LeastSquares", n), n, fval, grad, mat.Col(nil, 0, &wmin)), nil
}
