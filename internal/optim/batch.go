package optim

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// BatchKind selects a batch (line-search based) optimizer.
type BatchKind int

const (
	BatchGD BatchKind = iota
	BatchCGD
	BatchCGDHS
	BatchCGDFR
	BatchCGDPRP
	BatchCGDCD
	BatchCGDLS
	BatchCGDDY
	BatchCGDN
	BatchCGDDYCD
	BatchCGDDYHS
	BatchLBFGS
)

var batchKindNames = map[BatchKind]string{
	BatchGD:      "gd",
	BatchCGD:     "cgd",
	BatchCGDHS:   "cgd-hs",
	BatchCGDFR:   "cgd-fr",
	BatchCGDPRP:  "cgd-prp",
	BatchCGDCD:   "cgd-cd",
	BatchCGDLS:   "cgd-ls",
	BatchCGDDY:   "cgd-dy",
	BatchCGDN:    "cgd-n",
	BatchCGDDYCD: "cgd-dycd",
	BatchCGDDYHS: "cgd-dyhs",
	BatchLBFGS:   "lbfgs",
}

// BatchKinds returns all batch optimizers in declaration order.
func BatchKinds() []BatchKind {
	kinds := make([]BatchKind, 0, len(batchKindNames))
	for k := BatchGD; k <= BatchLBFGS; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the optimizer name, e.g. "cgd-prp".
func (k BatchKind) String() string {
	if name, ok := batchKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("batch(%d)", int(k))
}

// ParseBatchKind returns the batch optimizer with the given name.
func ParseBatchKind(name string) (BatchKind, error) {
	for k, n := range batchKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.WithStack(&ErrInvalidArgument{
		Name:    "optimizer",
		Value:   name,
		Message: "unknown batch optimizer",
	})
}

// BatchConfig holds the configuration shared by batch optimizers.
//
// Zero fields are replaced by defaults when the optimizer is created;
// the defaults depend on the optimizer (see NewBatch).
type BatchConfig struct {
	MaxIterations int     // Iteration budget (default: 1000)
	Epsilon       float64 // Gradient norm tolerance (default: 1e-6)

	LineSearch  LineSearchKind // Line-search strategy (default: per optimizer)
	InitialStep InitialStep    // First trial step strategy (default: per optimizer)

	Alpha float64 // Armijo sufficient decrease constant (default: 0.2)
	Beta  float64 // Armijo shrink factor (default: 0.7)
	C1    float64 // Wolfe sufficient decrease constant (default: 1e-4)
	C2    float64 // Wolfe curvature constant (default: 0.1 for CGD, 0.9 for LBFGS)

	MaxLineSearchIterations int // Probe budget per line search (default: 64)
	HistorySize             int // LBFGS history length (default: 6)

	Callbacks Callbacks
}

// withDefaults fills unset fields. ls, init and c2 are the optimizer's
// preferred line search, initializer and curvature constant.
func (c BatchConfig) withDefaults(ls LineSearchKind, init InitialStep, c2 float64) BatchConfig {
	if c.MaxIterations == 0 {
		c.MaxIterations = 1000
	}
	if c.Epsilon == 0 {
		c.Epsilon = 1e-6
	}
	if c.LineSearch == LineSearchDefault {
		c.LineSearch = ls
	}
	if c.InitialStep == InitDefault {
		c.InitialStep = init
	}
	if c.Alpha == 0 {
		c.Alpha = 0.2
	}
	if c.Beta == 0 {
		c.Beta = 0.7
	}
	if c.C1 == 0 {
		c.C1 = 1e-4
	}
	if c.C2 == 0 {
		c.C2 = c2
	}
	if c.MaxLineSearchIterations == 0 {
		c.MaxLineSearchIterations = 64
	}
	if c.HistorySize == 0 {
		c.HistorySize = 6
	}
	return c
}

// Validate checks the hyperparameter ranges. Zero values are accepted since
// they select defaults.
func (c BatchConfig) Validate() error {
	var result *multierror.Error
	invalid := func(name string, value interface{}, msg string) {
		result = multierror.Append(result, errors.WithStack(&ErrInvalidArgument{Name: name, Value: value, Message: msg}))
	}

	if c.MaxIterations < 0 {
		invalid("MaxIterations", c.MaxIterations, "must be positive")
	}
	if c.Epsilon < 0 {
		invalid("Epsilon", c.Epsilon, "must be positive")
	}
	if c.Alpha < 0 || c.Alpha >= 1 {
		invalid("Alpha", c.Alpha, "outside allowed range (0, 1)")
	}
	if c.Beta < 0 || c.Beta >= 1 {
		invalid("Beta", c.Beta, "outside allowed range (0, 1)")
	}
	if c.C1 < 0 || c.C1 >= 1 {
		invalid("C1", c.C1, "outside allowed range (0, 1)")
	}
	if c.C2 < 0 || c.C2 >= 1 {
		invalid("C2", c.C2, "outside allowed range (0, 1)")
	}
	if c.C1 > 0 && c.C2 > 0 && c.C2 <= c.C1 {
		invalid("C2", c.C2, "must be greater than C1")
	}
	if c.MaxLineSearchIterations < 0 {
		invalid("MaxLineSearchIterations", c.MaxLineSearchIterations, "must be positive")
	}
	if c.HistorySize < 0 {
		invalid("HistorySize", c.HistorySize, "must be positive")
	}
	if c.LineSearch < LineSearchDefault || c.LineSearch > LineSearchStrongWolfe {
		invalid("LineSearch", c.LineSearch, "unknown line search")
	}
	if c.InitialStep < InitDefault || c.InitialStep > InitQuadratic {
		invalid("InitialStep", c.InitialStep, "unknown initial step")
	}

	return result.ErrorOrNil()
}

// lineSearch builds the configured line-search strategy.
func (c BatchConfig) lineSearch() LineSearch {
	if c.LineSearch == LineSearchArmijo {
		return NewArmijo(c.Alpha, c.Beta, c.MaxLineSearchIterations, c.Callbacks)
	}
	return NewStrongWolfe(c.C1, c.C2, c.MaxLineSearchIterations, c.Callbacks)
}

// NewBatch creates the batch optimizer of the given kind.
//
// Defaults per optimizer:
//   - gd: Armijo backtracking, quadratic initial step
//   - cgd*: strong Wolfe with C2 = 0.1, quadratic initial step
//   - lbfgs: strong Wolfe with C2 = 0.9, unit initial step
func NewBatch(kind BatchKind, config BatchConfig) (Batch, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch kind {
	case BatchGD:
		return NewGD(config), nil
	case BatchLBFGS:
		return NewLBFGS(config), nil
	}

	rule, ok := betaRules[kind]
	if !ok {
		return nil, errors.WithStack(&ErrInvalidArgument{
			Name:    "optimizer",
			Value:   kind,
			Message: "unknown batch optimizer",
		})
	}
	return NewCGD(kind.String(), rule, config), nil
}

// MinimizeBatch minimizes problem starting from x0 with the batch optimizer
// of the given kind. An error is returned only for an invalid configuration;
// optimization failures are reported through the returned State's Status.
func MinimizeBatch(kind BatchKind, problem *Problem, x0 []float64, config BatchConfig) (*State, error) {
	opt, err := NewBatch(kind, config)
	if err != nil {
		return nil, err
	}
	return opt.Minimize(problem, x0), nil
}

// descentMethod computes search directions for the batch loop.
type descentMethod interface {
	// direction sets curr.D for iteration i; prev is the state before the last step.
	direction(i int, curr, prev *State)
	// accepted is called after curr moved away from prev.
	accepted(prev, curr *State)
}

// minimizeBatch is the loop shared by all batch optimizers.
func minimizeBatch(name string, problem *Problem, x0 []float64, config BatchConfig, ls LineSearch, method descentMethod) *State {
	curr := NewState(problem, x0)
	prev := curr.Clone()

	for i := 0; i < config.MaxIterations; i++ {
		config.Callbacks.progress(curr)

		if curr.Converged(config.Epsilon) {
			curr.Status = StatusConverged
			return curr
		}

		method.direction(i, curr, prev)

		t0 := config.InitialStep.initial(i, curr, prev)
		step := ls.Search(problem, curr, t0)
		if step.Failed() {
			config.Callbacks.error(fmt.Sprintf("line-search failed for %s!", name))
			curr.Status = StatusLineSearchFailed
			return curr
		}

		prev.CopyFrom(curr)
		if step.G != nil {
			curr.UpdateWith(problem, step.T, step.F, step.G)
		} else {
			curr.Update(problem, step.T)
		}

		method.accepted(prev, curr)
	}

	if curr.Converged(config.Epsilon) {
		curr.Status = StatusConverged
	} else {
		curr.Status = StatusMaxIterations
	}
	return curr
}
