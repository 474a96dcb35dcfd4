package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/minimize/internal/optim"
)

// cgdStates builds the (prev, curr) pair of a conjugate gradient step with
// previous gradient g, previous direction d and new gradient g1.
func cgdStates(g, d, g1 []float64) (prev, curr *optim.State) {
	prev = &optim.State{G: g, D: d}
	curr = &optim.State{G: g1, D: make([]float64, len(g1))}
	return prev, curr
}

func TestBetaRules(t *testing.T) {
	// g = (1, 2), d = (-1, -1), g1 = (0.5, -1), y = g1 - g = (-0.5, -3)
	//   g1.g1 = 1.25, g.g = 5, d.g = -3, g1.y = 2.75, d.y = 3.5, |y|^2 = 9.25, d.g1 = 0.5
	prev, curr := cgdStates([]float64{1, 2}, []float64{-1, -1}, []float64{0.5, -1})

	testcases := map[string]struct {
		rule optim.BetaRule
		want float64
	}{
		"hs":   {rule: optim.HestenesStiefel{}, want: 2.75 / 3.5},
		"fr":   {rule: optim.FletcherReeves{}, want: 1.25 / 5},
		"prp":  {rule: optim.PolakRibiere{}, want: 2.75 / 5},
		"cd":   {rule: optim.ConjugateDescent{}, want: 1.25 / 3},
		"ls":   {rule: optim.LiuStorey{}, want: 2.75 / 3},
		"dy":   {rule: optim.DaiYuan{}, want: 1.25 / 3.5},
		"n":    {rule: optim.HagerZhang{}, want: (2.75 - 2*0.5*9.25/3.5) / 3.5},
		"dycd": {rule: optim.DaiYuanConjugateDescent{}, want: 1.25 / 3.5},
		"dyhs": {rule: optim.DaiYuanHestenesStiefel{}, want: 1.25 / 3.5},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.rule.Beta(prev, curr), 1e-12)
		})
	}
}

func TestBetaRules_HybridsAreNonNegative(t *testing.T) {
	// d.y < 0 makes HS and DY negative while CD stays positive.
	prev, curr := cgdStates([]float64{1, 0}, []float64{-1, 0}, []float64{2, 0})

	assert.InDelta(t, -2.0, optim.HestenesStiefel{}.Beta(prev, curr), 1e-12)
	assert.InDelta(t, -4.0, optim.DaiYuan{}.Beta(prev, curr), 1e-12)
	assert.InDelta(t, 4.0, optim.ConjugateDescent{}.Beta(prev, curr), 1e-12)

	assert.Equal(t, 0.0, optim.DaiYuanConjugateDescent{}.Beta(prev, curr))
	assert.Equal(t, 0.0, optim.DaiYuanHestenesStiefel{}.Beta(prev, curr))
}

func TestCGD_CustomRule(t *testing.T) {
	const n = 10
	problem, want := quadratic(tridiagonal(n), ones(n))

	cgd := optim.NewCGD("custom", optim.FletcherReeves{}, optim.BatchConfig{MaxIterations: 500, Epsilon: 1e-5})
	state := cgd.Minimize(problem, make([]float64, n))

	assert.Equal(t, optim.StatusConverged, state.Status)
	for i := range want {
		assert.InDelta(t, want[i], state.X[i], 1e-4)
	}
}
