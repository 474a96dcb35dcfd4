package optim_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minimize/internal/optim"
)

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func TestMinimizeBatch_Quadratic(t *testing.T) {
	const n = 10
	problem, want := quadratic(tridiagonal(n), ones(n))

	for _, kind := range optim.BatchKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			state, err := optim.MinimizeBatch(kind, problem, make([]float64, n), optim.BatchConfig{
				MaxIterations: 500,
				Epsilon:       1e-5,
			})
			require.NoError(t, err)

			assert.Equal(t, optim.StatusConverged, state.Status)
			assert.Less(t, state.GradNorm(), 1e-5)
			for i := range want {
				assert.InDelta(t, want[i], state.X[i], 1e-4)
			}
		})
	}
}

func TestMinimizeBatch_LineSearchOverrides(t *testing.T) {
	const n = 10
	problem, want := quadratic(tridiagonal(n), ones(n))

	testcases := map[string]struct {
		kind   optim.BatchKind
		config optim.BatchConfig
	}{
		"gd with strong wolfe": {
			kind:   optim.BatchGD,
			config: optim.BatchConfig{LineSearch: optim.LineSearchStrongWolfe},
		},
		"lbfgs with armijo": {
			kind:   optim.BatchLBFGS,
			config: optim.BatchConfig{LineSearch: optim.LineSearchArmijo},
		},
		"cgd with unit initial step": {
			kind:   optim.BatchCGDPRP,
			config: optim.BatchConfig{InitialStep: optim.InitUnit},
		},
		"lbfgs with quadratic initial step": {
			kind:   optim.BatchLBFGS,
			config: optim.BatchConfig{InitialStep: optim.InitQuadratic, HistorySize: 3},
		},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			tc.config.MaxIterations = 500
			tc.config.Epsilon = 1e-5

			state, err := optim.MinimizeBatch(tc.kind, problem, make([]float64, n), tc.config)
			require.NoError(t, err)
			assert.Equal(t, optim.StatusConverged, state.Status)
			for i := range want {
				assert.InDelta(t, want[i], state.X[i], 1e-4)
			}
		})
	}
}

func TestGD_ShiftedSquare(t *testing.T) {
	gd := optim.NewGD(optim.BatchConfig{MaxIterations: 100, Epsilon: 1e-6})

	state := gd.Minimize(shiftedSquare(3), []float64{0})

	assert.Equal(t, optim.StatusConverged, state.Status)
	assert.InDelta(t, 3.0, state.X[0], 1e-4)
	assert.Less(t, state.Iterations, 100)
	assert.Greater(t, state.FCalls, 0)
	assert.Greater(t, state.GCalls, state.Iterations)
}

func TestLBFGS_Rosenbrock(t *testing.T) {
	lbfgs := optim.NewLBFGS(optim.BatchConfig{MaxIterations: 500, Epsilon: 1e-8, HistorySize: 6})

	state := lbfgs.Minimize(rosenbrock(), []float64{-1.2, 1})

	require.Equal(t, optim.StatusConverged, state.Status)
	assert.InDelta(t, 1.0, state.X[0], 1e-6)
	assert.InDelta(t, 1.0, state.X[1], 1e-6)
	assert.Less(t, state.F, 1e-12)
}

// With a full history and a tight curvature constant the line search is
// close to exact, so L-BFGS terminates within n+1 iterations on a quadratic.
// The default C2 = 0.9 does not guarantee this.
func TestLBFGS_QuadraticFiniteTermination(t *testing.T) {
	for _, n := range []int{5, 10, 20} {
		t.Run(fmt.Sprintf("%dD", n), func(t *testing.T) {
			problem, want := quadratic(tridiagonal(n), ones(n))
			lbfgs := optim.NewLBFGS(optim.BatchConfig{
				MaxIterations: 100,
				Epsilon:       1e-6,
				HistorySize:   n,
				C1:            1e-5,
				C2:            0.1,
			})

			state := lbfgs.Minimize(problem, make([]float64, n))

			require.Equal(t, optim.StatusConverged, state.Status)
			assert.LessOrEqual(t, state.Iterations, n+1)
			assert.InDeltaSlice(t, want, state.X, 1e-5)
		})
	}
}

// Below the float64 resolution of f the line search cannot decrease it any
// further, so a tiny epsilon may end with a failed line search at the minimizer.
func TestMinimizeBatch_PrecisionLimit(t *testing.T) {
	const n = 20
	for _, kind := range optim.BatchKinds() {
		if kind == optim.BatchGD {
			continue
		}
		t.Run(kind.String(), func(t *testing.T) {
			problem, want := quadratic(tridiagonal(n), ones(n))

			state, err := optim.MinimizeBatch(kind, problem, make([]float64, n), optim.BatchConfig{Epsilon: 1e-8})
			require.NoError(t, err)

			assert.Contains(t, []optim.Status{optim.StatusConverged, optim.StatusLineSearchFailed}, state.Status)
			assert.InDeltaSlice(t, want, state.X, 1e-6)
		})
	}
}

func TestLBFGS_FewerIterationsThanGD(t *testing.T) {
	const n = 10
	problem, _ := quadratic(tridiagonal(n), ones(n))
	config := optim.BatchConfig{MaxIterations: 500, Epsilon: 1e-5}

	lbfgs := optim.NewLBFGS(config).Minimize(problem, make([]float64, n))
	gd := optim.NewGD(config).Minimize(problem, make([]float64, n))

	require.Equal(t, optim.StatusConverged, lbfgs.Status)
	require.Equal(t, optim.StatusConverged, gd.Status)
	assert.LessOrEqual(t, lbfgs.Iterations, 5*n)
	assert.LessOrEqual(t, lbfgs.Iterations, gd.Iterations)
}

func TestMinimizeBatch_LineSearchFailure(t *testing.T) {
	problem := optim.NewProblem(
		func() int { return 1 },
		func(x []float64) float64 { return math.NaN() },
		func(x, g []float64) float64 {
			g[0] = 1
			return math.NaN()
		},
	)

	var failures []string
	gd := optim.NewGD(optim.BatchConfig{
		Callbacks: optim.Callbacks{Error: func(msg string) { failures = append(failures, msg) }},
	})

	state := gd.Minimize(problem, []float64{0})

	assert.Equal(t, optim.StatusLineSearchFailed, state.Status)
	assert.Equal(t, 0, state.Iterations)
	assert.Equal(t, []string{"line-search failed for GD!"}, failures)
}

func TestMinimizeBatch_MaxIterations(t *testing.T) {
	var progress int
	config := optim.BatchConfig{
		MaxIterations: 5,
		Epsilon:       1e-12,
		Callbacks:     optim.Callbacks{Progress: func(*optim.State) { progress++ }},
	}

	state, err := optim.MinimizeBatch(optim.BatchGD, rosenbrock(), []float64{-1.2, 1}, config)
	require.NoError(t, err)

	assert.Equal(t, optim.StatusMaxIterations, state.Status)
	assert.Equal(t, 5, state.Iterations)
	assert.Equal(t, 5, progress)
}

func TestMinimizeBatch_ProgressOncePerIteration(t *testing.T) {
	var iterations []int
	config := optim.BatchConfig{
		MaxIterations: 100,
		Callbacks: optim.Callbacks{Progress: func(s *optim.State) {
			iterations = append(iterations, s.Iterations)
		}},
	}

	state, err := optim.MinimizeBatch(optim.BatchCGD, sphere([]float64{1, 2, 3}), []float64{0, 0, 0}, config)
	require.NoError(t, err)

	require.Equal(t, optim.StatusConverged, state.Status)
	require.Len(t, iterations, state.Iterations+1)
	for i, it := range iterations {
		assert.Equal(t, i, it)
	}
}

func TestMinimizeBatch_ConvergedAtStart(t *testing.T) {
	for _, kind := range optim.BatchKinds() {
		state, err := optim.MinimizeBatch(kind, sphere([]float64{1, 2}), []float64{1, 2}, optim.BatchConfig{})
		require.NoError(t, err)
		assert.Equal(t, optim.StatusConverged, state.Status, kind.String())
		assert.Equal(t, 0, state.Iterations, kind.String())
	}
}

func TestBatchConfig_Validate(t *testing.T) {
	testcases := map[string]struct {
		config optim.BatchConfig
		fields []string
	}{
		"defaults": {
			config: optim.BatchConfig{},
		},
		"explicit": {
			config: optim.BatchConfig{MaxIterations: 10, Epsilon: 1e-8, C1: 1e-4, C2: 0.9, HistorySize: 20},
		},
		"negative epsilon": {
			config: optim.BatchConfig{Epsilon: -1},
			fields: []string{"Epsilon"},
		},
		"armijo constants": {
			config: optim.BatchConfig{Alpha: 1, Beta: 1.5},
			fields: []string{"Alpha", "Beta"},
		},
		"wolfe ordering": {
			config: optim.BatchConfig{C1: 0.5, C2: 0.3},
			fields: []string{"C2"},
		},
		"unknown line search": {
			config: optim.BatchConfig{LineSearch: optim.LineSearchKind(7)},
			fields: []string{"LineSearch"},
		},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			err := tc.config.Validate()
			if len(tc.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var merr *multierror.Error
			require.True(t, errors.As(err, &merr))
			require.Len(t, merr.Errors, len(tc.fields))
			for i, e := range merr.Errors {
				var invalid *optim.ErrInvalidArgument
				require.True(t, errors.As(e, &invalid))
				assert.Equal(t, tc.fields[i], invalid.Name)
			}
		})
	}
}

func TestNewBatch_InvalidConfig(t *testing.T) {
	opt, err := optim.NewBatch(optim.BatchLBFGS, optim.BatchConfig{MaxIterations: -1})
	assert.Nil(t, opt)

	var invalid *optim.ErrInvalidArgument
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "MaxIterations", invalid.Name)
	assert.Equal(t, -1, invalid.Value)
}

func TestNewBatch_UnknownKind(t *testing.T) {
	_, err := optim.NewBatch(optim.BatchKind(99), optim.BatchConfig{})
	var invalid *optim.ErrInvalidArgument
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, err.Error(), "unknown batch optimizer")
}

func TestParseBatchKind(t *testing.T) {
	for _, kind := range optim.BatchKinds() {
		parsed, err := optim.ParseBatchKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := optim.ParseBatchKind("newton")
	assert.Error(t, err)
	assert.Equal(t, "batch(99)", optim.BatchKind(99).String())
	assert.Len(t, optim.BatchKinds(), 12)
}
