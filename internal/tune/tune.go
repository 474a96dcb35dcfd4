// Package tune sweeps the learning-rate hyperparameters of the stochastic
// optimizers.
//
// Every (alpha0, decay) grid point is evaluated with a short run on its own
// Problem. Trials run concurrently; the lowest final function value wins.
package tune

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/minimize/internal/optim"
)

// ProblemSource creates independent instances of the objective, one per trial.
type ProblemSource interface {
	Problem() *optim.Problem
}

// Config controls a sweep.
type Config struct {
	Alpha0s   []float64 // Initial learning rates (default: 1, 1e-1, 1e-2, 1e-3)
	Decays    []float64 // Decay exponents (default: 0.5, 0.75, 1)
	Epochs    int       // Epochs per trial (default: 1)
	EpochSize int       // Updates per epoch (default: 100)
	Workers   int       // Concurrent trials (default: number of CPUs)

	// Logger receives one debug entry per finished trial. Optional.
	Logger *log.Entry
}

func (c Config) withDefaults() Config {
	if len(c.Alpha0s) == 0 {
		c.Alpha0s = []float64{1, 1e-1, 1e-2, 1e-3}
	}
	if len(c.Decays) == 0 {
		c.Decays = []float64{0.5, 0.75, 1}
	}
	if c.Epochs == 0 {
		c.Epochs = 1
	}
	if c.EpochSize == 0 {
		c.EpochSize = 100
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c
}

// Point is one hyperparameter combination.
type Point struct {
	Alpha0 float64
	Decay  float64
}

// Grid returns the cartesian product of alpha0s and decays, alpha0 major.
func Grid(alpha0s, decays []float64) []Point {
	points := make([]Point, 0, len(alpha0s)*len(decays))
	for _, a := range alpha0s {
		for _, d := range decays {
			points = append(points, Point{Alpha0: a, Decay: d})
		}
	}
	return points
}

// Trial is the outcome of a run at one grid point.
type Trial struct {
	Point
	State *optim.State
}

// Best keeps the trial with the lowest final function value. It is safe for
// concurrent use.
type Best struct {
	mu    sync.Mutex
	trial Trial
	ok    bool
}

// Offer records t if it improves on the current best and reports whether it did.
// Non-finite values never beat a finite one.
func (b *Best) Offer(t Trial) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ok && !t.State.Better(b.trial.State) {
		return false
	}
	b.trial, b.ok = t, true
	return true
}

// Get returns the best trial so far, if any.
func (b *Best) Get() (Trial, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trial, b.ok
}

// Result is the outcome of a sweep.
type Result struct {
	Best   Trial
	Trials []Trial // Sorted by final function value, best first
}

// Sweep evaluates every grid point with the stochastic optimizer kind,
// starting each trial from x0.
//
// Cancelling ctx stops scheduling new trials; the ones already running
// complete. The context error is returned in that case.
func Sweep(ctx context.Context, kind optim.StochKind, source ProblemSource, x0 []float64, config Config) (Result, error) {
	config = config.withDefaults()

	var (
		best   Best
		mu     sync.Mutex
		trials []Trial
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)

	for _, point := range Grid(config.Alpha0s, config.Decays) {
		if gctx.Err() != nil {
			break
		}

		point := point
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			state, err := optim.MinimizeStoch(kind, source.Problem(), x0, optim.StochConfig{
				Epochs:    config.Epochs,
				EpochSize: config.EpochSize,
				Alpha0:    point.Alpha0,
				Decay:     point.Decay,
			})
			if err != nil {
				return errors.WithMessagef(err, "%s trial alpha0=%g decay=%g", kind, point.Alpha0, point.Decay)
			}

			trial := Trial{Point: point, State: state}
			improved := best.Offer(trial)

			mu.Lock()
			trials = append(trials, trial)
			mu.Unlock()

			if config.Logger != nil {
				config.Logger.WithFields(log.Fields{
					"optimizer": kind.String(),
					"alpha0":    point.Alpha0,
					"decay":     point.Decay,
					"f":         state.F,
					"improved":  improved,
				}).Debug("tuning trial")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	trial, ok := best.Get()
	if !ok {
		return Result{}, errors.New("tune: empty grid")
	}

	slices.SortStableFunc(trials, func(a, b Trial) bool { return a.State.Better(b.State) })
	return Result{Best: trial, Trials: trials}, nil
}

// Config returns the stochastic configuration of the best point, with the
// given epoch budget, for the final run.
func (r Result) Config(epochs, epochSize int) optim.StochConfig {
	return optim.StochConfig{
		Epochs:    epochs,
		EpochSize: epochSize,
		Alpha0:    r.Best.Alpha0,
		Decay:     r.Best.Decay,
	}
}
