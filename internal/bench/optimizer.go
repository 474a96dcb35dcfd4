package bench

import (
	"github.com/born-ml/minimize/internal/optim"
)

// Optimizer is a named optimizer run.
type Optimizer struct {
	Name string
	Run  func(problem *optim.Problem, x0 []float64) *optim.State
}

// BatchOptimizers returns the batch optimizers of the given kinds, all
// sharing config. Repeated kinds are returned once, at their first position.
func BatchOptimizers(kinds []optim.BatchKind, config optim.BatchConfig) ([]Optimizer, error) {
	kinds = unique(kinds)
	opts := make([]Optimizer, 0, len(kinds))
	for _, kind := range kinds {
		opt, err := optim.NewBatch(kind, config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, Optimizer{Name: kind.String(), Run: opt.Minimize})
	}
	return opts, nil
}

// StochOptimizers returns the stochastic optimizers of the given kinds, all
// sharing config. Repeated kinds are returned once, at their first position.
func StochOptimizers(kinds []optim.StochKind, config optim.StochConfig) ([]Optimizer, error) {
	kinds = unique(kinds)
	opts := make([]Optimizer, 0, len(kinds))
	for _, kind := range kinds {
		opt, err := optim.NewStoch(kind, config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, Optimizer{Name: kind.String(), Run: opt.Minimize})
	}
	return opts, nil
}

func unique[K comparable](kinds []K) []K {
	seen := make(map[K]bool, len(kinds))
	out := make([]K, 0, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
