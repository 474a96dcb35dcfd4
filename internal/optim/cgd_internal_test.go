package optim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type constantBeta float64

func (b constantBeta) Beta(_, _ *State) float64 { return float64(b) }

func TestConjugateDirection(t *testing.T) {
	newStates := func() (prev, curr *State) {
		prev = &State{G: []float64{1, 1}, D: []float64{-1, -2}}
		curr = &State{G: []float64{0.5, -0.5}, D: make([]float64, 2)}
		return prev, curr
	}

	testcases := map[string]struct {
		beta     float64
		iter     int
		want     []float64
		warnings int
	}{
		"first iteration":  {beta: 1, iter: 0, want: []float64{-0.5, 0.5}},
		"conjugate":        {beta: 0.5, iter: 1, want: []float64{-1, -0.5}},
		"negative clamped": {beta: -3, iter: 1, want: []float64{-0.5, 0.5}},
		"nan reset":        {beta: math.NaN(), iter: 1, want: []float64{-0.5, 0.5}, warnings: 1},
		"inf reset":        {beta: math.Inf(1), iter: 1, want: []float64{-0.5, 0.5}, warnings: 1},
		// -g + 2*d = (-2.5, -3.5) is an ascent direction.
		"ascent reset": {beta: 2, iter: 1, want: []float64{-0.5, 0.5}},
	}
	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			var warnings int
			c := &conjugateDirection{
				rule:      constantBeta(tc.beta),
				callbacks: Callbacks{Warn: func(string) { warnings++ }},
			}
			prev, curr := newStates()

			c.direction(tc.iter, curr, prev)

			assert.Equal(t, tc.want, curr.D)
			assert.Equal(t, tc.warnings, warnings)
		})
	}
}
