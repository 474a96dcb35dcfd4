package config

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/born-ml/minimize/internal/optim"
)

func invalid(result *multierror.Error, name string, value interface{}, msg string) *multierror.Error {
	return multierror.Append(result, errors.WithStack(&optim.ErrInvalidArgument{Name: name, Value: value, Message: msg}))
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if err := c.Logging.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Bench.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Tune.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// Validate checks the benchmark settings.
func (b Bench) Validate() error {
	var result *multierror.Error

	if b.MinDims < 1 {
		result = invalid(result, "bench.minDims", b.MinDims, "must be at least 1")
	}
	if b.MaxDims < b.MinDims {
		result = invalid(result, "bench.maxDims", b.MaxDims, "must not be smaller than minDims")
	}
	if b.Trials < 1 {
		result = invalid(result, "bench.trials", b.Trials, "must be at least 1")
	}
	if b.Workers < 0 {
		result = invalid(result, "bench.workers", b.Workers, "must not be negative")
	}
	if len(b.Batch) == 0 && len(b.Stoch) == 0 {
		result = invalid(result, "bench.batch", b.Batch, "no optimizer selected")
	}
	if b.MaxIterations < 1 {
		result = invalid(result, "bench.maxIterations", b.MaxIterations, "must be at least 1")
	}
	if !(b.Epsilon > 0) {
		result = invalid(result, "bench.epsilon", b.Epsilon, "must be positive")
	}
	if b.Epochs < 1 {
		result = invalid(result, "bench.epochs", b.Epochs, "must be at least 1")
	}
	if b.EpochSize < 1 {
		result = invalid(result, "bench.epochSize", b.EpochSize, "must be at least 1")
	}

	return result.ErrorOrNil()
}

// Validate checks the tuning settings.
func (t Tune) Validate() error {
	var result *multierror.Error

	if t.Function == "" {
		result = invalid(result, "tune.function", t.Function, "must not be empty")
	}
	if t.Dims < 1 {
		result = invalid(result, "tune.dims", t.Dims, "must be at least 1")
	}
	if len(t.Stoch) == 0 {
		result = invalid(result, "tune.stoch", t.Stoch, "no optimizer selected")
	}
	if t.Epochs < 1 {
		result = invalid(result, "tune.epochs", t.Epochs, "must be at least 1")
	}
	if t.EpochSize < 1 {
		result = invalid(result, "tune.epochSize", t.EpochSize, "must be at least 1")
	}
	if len(t.Alpha0s) == 0 {
		result = invalid(result, "tune.alpha0s", t.Alpha0s, "must not be empty")
	}
	for _, a := range t.Alpha0s {
		if !(a > 0) {
			result = invalid(result, "tune.alpha0s", a, "must be positive")
		}
	}
	if len(t.Decays) == 0 {
		result = invalid(result, "tune.decays", t.Decays, "must not be empty")
	}
	for _, d := range t.Decays {
		if d < 0 || d > 1 {
			result = invalid(result, "tune.decays", d, "outside allowed range [0, 1]")
		}
	}
	if t.Workers < 0 {
		result = invalid(result, "tune.workers", t.Workers, "must not be negative")
	}

	return result.ErrorOrNil()
}
