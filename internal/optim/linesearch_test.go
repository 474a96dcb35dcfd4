package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/minimize/internal/optim"
)

// descentStates returns states with strict descent directions on a convex
// quadratic, including badly scaled ones.
func descentStates(problem *optim.Problem, n int) []*optim.State {
	var states []*optim.State
	for _, scale := range []float64{1e-2, 1, 10, 1e3} {
		x0 := make([]float64, n)
		for i := range x0 {
			x0[i] = float64(i%3) - 1
		}
		s := optim.NewState(problem, x0)
		floats.ScaleTo(s.D, -scale, s.G)
		// Perturb the direction, keeping it a descent direction.
		s.D[0] += 0.1 * scale * s.G[0]
		states = append(states, s)
	}
	return states
}

func TestArmijo_SufficientDecrease(t *testing.T) {
	b := []float64{1, 2, 3, 4, 5}
	problem, _ := quadratic(tridiagonal(5), b)
	ls := optim.NewArmijo(0, 0, 0, optim.Callbacks{})

	assert.Equal(t, 0.2, ls.Alpha)
	assert.Equal(t, 0.7, ls.Beta)
	assert.Equal(t, 64, ls.MaxIterations)

	for _, s := range descentStates(problem, 5) {
		dg := floats.Dot(s.G, s.D)
		require.Less(t, dg, 0.0)

		step := ls.Search(problem, s, 1)
		require.False(t, step.Failed())
		assert.Greater(t, step.T, 0.0)
		assert.Nil(t, step.G)

		xt := make([]float64, len(s.X))
		floats.AddScaledTo(xt, s.X, step.T, s.D)
		assert.InDelta(t, problem.Value(xt), step.F, 1e-12)
		assert.LessOrEqual(t, step.F, s.F+ls.Alpha*step.T*dg)
	}
}

func TestStrongWolfe_Conditions(t *testing.T) {
	b := []float64{1, 2, 3, 4, 5}
	problem, _ := quadratic(tridiagonal(5), b)

	for _, c2 := range []float64{0.1, 0.9} {
		ls := optim.NewStrongWolfe(0, c2, 0, optim.Callbacks{})
		assert.Equal(t, 1e-4, ls.C1)

		for _, s := range descentStates(problem, 5) {
			dg := floats.Dot(s.G, s.D)

			step := ls.Search(problem, s, 1)
			require.False(t, step.Failed(), "c2 = %v", c2)
			require.NotNil(t, step.G)

			dgt := floats.Dot(step.G, s.D)
			assert.True(t, wolfeHolds(s.F, dg, step.T, step.F, dgt, ls.C1, ls.C2),
				"c2 = %v, t = %v, f = %v/%v, dg = %v/%v", c2, step.T, s.F, step.F, dg, dgt)
		}
	}
}

func TestStrongWolfe_OneDimensional(t *testing.T) {
	// Strongly convex 1-D restriction with the minimum far away from t0,
	// exercising both the bracketing growth and the zoom.
	problem := shiftedSquare(100)
	ls := optim.NewStrongWolfe(1e-4, 0.1, 64, optim.Callbacks{})

	s := optim.NewState(problem, []float64{0})
	s.D[0] = 1

	step := ls.Search(problem, s, 1)
	require.False(t, step.Failed())
	assert.InDelta(t, 100.0, step.T, 10.0)
	assert.True(t, wolfeHolds(s.F, s.G[0], step.T, step.F, step.G[0], 1e-4, 0.1))
}

func TestLineSearch_ResetsNonDescentDirection(t *testing.T) {
	problem := sphere([]float64{1, 2, 3})

	for name, ls := range map[string]func(cb optim.Callbacks) optim.LineSearch{
		"armijo":       func(cb optim.Callbacks) optim.LineSearch { return optim.NewArmijo(0, 0, 0, cb) },
		"strong-wolfe": func(cb optim.Callbacks) optim.LineSearch { return optim.NewStrongWolfe(0, 0, 0, cb) },
	} {
		t.Run(name, func(t *testing.T) {
			var warnings []string
			cb := optim.Callbacks{Warn: func(msg string) { warnings = append(warnings, msg) }}

			s := optim.NewState(problem, []float64{0, 0, 0})
			copy(s.D, s.G) // ascent direction

			step := ls(cb).Search(problem, s, 1)

			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0], "not a descent direction")
			assert.False(t, step.Failed())
			for i := range s.D {
				assert.Equal(t, -s.G[i], s.D[i])
			}
		})
	}
}

func TestLineSearch_FailureReturnsZero(t *testing.T) {
	problem := sphere([]float64{1, 2, 3})

	s := optim.NewState(problem, []float64{0, 0, 0})
	floats.ScaleTo(s.D, -1, s.G)

	armijo := optim.NewArmijo(0.2, 0.7, 2, optim.Callbacks{})
	step := armijo.Search(problem, s, 1e6)
	assert.True(t, step.Failed())
	assert.Equal(t, 0.0, step.T)

	wolfe := optim.NewStrongWolfe(1e-4, 0.1, 1, optim.Callbacks{})
	step = wolfe.Search(problem, s, 1e6)
	assert.True(t, step.Failed())
}

func TestInitialStep_String(t *testing.T) {
	assert.Equal(t, "unit", optim.InitUnit.String())
	assert.Equal(t, "quadratic", optim.InitQuadratic.String())
	assert.Equal(t, "armijo", optim.LineSearchArmijo.String())
	assert.Equal(t, "strong-wolfe", optim.LineSearchStrongWolfe.String())
}
