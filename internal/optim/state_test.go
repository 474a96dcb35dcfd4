package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/minimize/internal/optim"
)

func TestState_New(t *testing.T) {
	problem := shiftedSquare(3)
	x0 := []float64{1}

	s := optim.NewState(problem, x0)

	assert.Equal(t, []float64{1}, s.X)
	assert.InDelta(t, 4.0, s.F, 1e-12)
	assert.InDelta(t, -4.0, s.G[0], 1e-12)
	assert.Equal(t, 0, s.Iterations)
	assert.Equal(t, 1, s.GCalls)

	// The initial point is copied.
	x0[0] = 100
	assert.Equal(t, 1.0, s.X[0])
}

func TestState_Update(t *testing.T) {
	problem := shiftedSquare(3)
	s := optim.NewState(problem, []float64{1})
	s.D[0] = 1

	s.Update(problem, 0.5)

	assert.InDelta(t, 1.5, s.X[0], 1e-12)
	assert.InDelta(t, 2.25, s.F, 1e-12)
	assert.InDelta(t, -3.0, s.G[0], 1e-12)
	assert.Equal(t, 1, s.Iterations)
	assert.Equal(t, 2, s.GCalls)
}

func TestState_UpdateWithReusesValues(t *testing.T) {
	problem := shiftedSquare(3)
	s := optim.NewState(problem, []float64{1})
	s.D[0] = 2

	s.UpdateWith(problem, 1, 42, []float64{7})

	assert.InDelta(t, 3.0, s.X[0], 1e-12)
	assert.Equal(t, 42.0, s.F)
	assert.Equal(t, []float64{7}, s.G)
	assert.Equal(t, 1, s.GCalls, "no extra evaluation")
}

func TestState_CloneIsDeep(t *testing.T) {
	problem := sphere([]float64{1, 2})
	s := optim.NewState(problem, []float64{0, 0})
	s.D[0] = -1

	c := s.Clone()
	s.X[0], s.G[0], s.D[0] = 10, 10, 10

	assert.Equal(t, []float64{0, 0}, c.X)
	assert.Equal(t, []float64{-1, -2}, c.G)
	assert.Equal(t, -1.0, c.D[0])
	assert.Equal(t, s.F, c.F)
}

func TestState_CopyFrom(t *testing.T) {
	problem := sphere([]float64{1, 2})
	a := optim.NewState(problem, []float64{0, 0})
	b := optim.NewState(problem, []float64{1, 1})

	a.CopyFrom(b)
	b.X[0] = 5

	assert.Equal(t, []float64{1, 1}, a.X)
	assert.Equal(t, b.F, a.F)
}

func TestState_Converged(t *testing.T) {
	problem := shiftedSquare(3)

	assert.False(t, optim.NewState(problem, []float64{0}).Converged(1e-6))
	assert.True(t, optim.NewState(problem, []float64{3}).Converged(1e-6))
	assert.InDelta(t, 6.0, optim.NewState(problem, []float64{0}).GradNorm(), 1e-12)
}

func TestState_Better(t *testing.T) {
	a := &optim.State{F: 1}
	b := &optim.State{F: 2}
	nan := &optim.State{F: math.NaN()}
	inf := &optim.State{F: math.Inf(-1)}

	assert.True(t, a.Better(b))
	assert.False(t, b.Better(a))
	assert.True(t, b.Better(nan))
	assert.False(t, nan.Better(b))
	assert.True(t, a.Better(inf))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "converged", optim.StatusConverged.String())
	assert.Equal(t, "max-iterations", optim.StatusMaxIterations.String())
	assert.Equal(t, "linesearch-failed", optim.StatusLineSearchFailed.String())
	assert.Equal(t, "unknown", optim.Status(42).String())
}
