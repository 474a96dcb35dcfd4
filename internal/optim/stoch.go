package optim

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// StochKind selects a stochastic optimizer.
type StochKind int

const (
	StochSG StochKind = iota
	StochSGA
	StochSIA
	StochAG
	StochAGGR
	StochAdaGrad
	StochAdaDelta
)

var stochKindNames = map[StochKind]string{
	StochSG:       "sg",
	StochSGA:      "sga",
	StochSIA:      "sia",
	StochAG:       "ag",
	StochAGGR:     "aggr",
	StochAdaGrad:  "adagrad",
	StochAdaDelta: "adadelta",
}

// StochKinds returns all stochastic optimizers in declaration order.
func StochKinds() []StochKind {
	kinds := make([]StochKind, 0, len(stochKindNames))
	for k := StochSG; k <= StochAdaDelta; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the optimizer name, e.g. "adagrad".
func (k StochKind) String() string {
	if name, ok := stochKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("stoch(%d)", int(k))
}

// ParseStochKind returns the stochastic optimizer with the given name.
func ParseStochKind(name string) (StochKind, error) {
	for k, n := range stochKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.WithStack(&ErrInvalidArgument{
		Name:    "optimizer",
		Value:   name,
		Message: "unknown stochastic optimizer",
	})
}

// StochConfig holds the configuration shared by stochastic optimizers.
type StochConfig struct {
	Epochs    int     // Number of epochs (default: 10)
	EpochSize int     // Updates per epoch (default: 100)
	Alpha0    float64 // Initial (or base) learning rate (default: 0.01)
	Decay     float64 // Learning rate decay exponent in [0, 1] (default: 0, constant rate)
	Rho       float64 // AdaDelta moving average coefficient (default: 0.95)
	Epsilon   float64 // AdaGrad/AdaDelta conditioning term (default: 1e-6)

	Callbacks Callbacks
}

func (c StochConfig) withDefaults() StochConfig {
	if c.Epochs == 0 {
		c.Epochs = 10
	}
	if c.EpochSize == 0 {
		c.EpochSize = 100
	}
	if c.Alpha0 == 0 {
		c.Alpha0 = 0.01
	}
	if c.Rho == 0 {
		c.Rho = 0.95
	}
	if c.Epsilon == 0 {
		c.Epsilon = 1e-6
	}
	return c
}

// Validate checks the hyperparameter ranges. Zero values are accepted since
// they select defaults.
func (c StochConfig) Validate() error {
	var result *multierror.Error
	invalid := func(name string, value interface{}, msg string) {
		result = multierror.Append(result, errors.WithStack(&ErrInvalidArgument{Name: name, Value: value, Message: msg}))
	}

	if c.Epochs < 0 {
		invalid("Epochs", c.Epochs, "must be positive")
	}
	if c.EpochSize < 0 {
		invalid("EpochSize", c.EpochSize, "must be positive")
	}
	if c.Alpha0 < 0 {
		invalid("Alpha0", c.Alpha0, "outside allowed range [0, Inf)")
	}
	if c.Decay < 0 || c.Decay > 1 {
		invalid("Decay", c.Decay, "outside allowed range [0, 1]")
	}
	if c.Rho < 0 || c.Rho >= 1 {
		invalid("Rho", c.Rho, "outside allowed range [0, 1)")
	}
	if c.Epsilon < 0 {
		invalid("Epsilon", c.Epsilon, "must be positive")
	}

	return result.ErrorOrNil()
}

// NewStoch creates the stochastic optimizer of the given kind.
func NewStoch(kind StochKind, config StochConfig) (Stoch, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch kind {
	case StochSG:
		return NewSG(config), nil
	case StochSGA:
		return NewSGA(config), nil
	case StochSIA:
		return NewSIA(config), nil
	case StochAG:
		return NewAG(config, false), nil
	case StochAGGR:
		return NewAG(config, true), nil
	case StochAdaGrad:
		return NewAdaGrad(config), nil
	case StochAdaDelta:
		return NewAdaDelta(config), nil
	default:
		return nil, errors.WithStack(&ErrInvalidArgument{
			Name:    "optimizer",
			Value:   kind,
			Message: "unknown stochastic optimizer",
		})
	}
}

// MinimizeStoch minimizes problem starting from x0 with the stochastic
// optimizer of the given kind. An error is returned only for an invalid
// configuration.
func MinimizeStoch(kind StochKind, problem *Problem, x0 []float64, config StochConfig) (*State, error) {
	opt, err := NewStoch(kind, config)
	if err != nil {
		return nil, err
	}
	return opt.Minimize(problem, x0), nil
}

// stochMethod performs the unconditional updates of a stochastic optimizer.
type stochMethod interface {
	// iterate performs update k, counted from 0 across epochs.
	iterate(k int)
	// point returns the point reported at the end of an epoch.
	point() []float64
}

// minimizeStoch is the epoch loop shared by all stochastic optimizers.
// The returned state is evaluated at the point reported after the last epoch.
func minimizeStoch(problem *Problem, x0 []float64, config StochConfig, method stochMethod) *State {
	s := NewState(problem, x0)

	for e := 0; e < config.Epochs; e++ {
		for i := 0; i < config.EpochSize; i++ {
			method.iterate(e*config.EpochSize + i)
		}

		s.MoveTo(problem, method.point())
		s.Iterations = (e + 1) * config.EpochSize
		config.Callbacks.progress(s)
	}

	s.Status = StatusMaxIterations
	return s
}
