package cmd

import (
	"fmt"
	"math/rand"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/born-ml/minimize/internal/bench"
	"github.com/born-ml/minimize/internal/functions"
	"github.com/born-ml/minimize/internal/logging"
	"github.com/born-ml/minimize/internal/optim"
	"github.com/born-ml/minimize/internal/tune"
)

func tuneCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Sweep the learning rate of the stochastic optimizers",
		Long: `Evaluates every (alpha0, decay) grid point with a short run of each
stochastic optimizer, then reruns the best point with the benchmark budget.`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().String("function", "Sphere", "Test function, e.g. Rosenbrock")
	cmd.Flags().Int("dims", 4, "Dimension of scalable test functions")
	cmd.Flags().Int64("seed", 1, "Seed of the starting point")
	cmd.Flags().StringSlice("optimizers", nil, "Optimizers to tune (default all)")
	cmd.Flags().StringSlice("alpha0s", nil, "Initial learning rates, e.g. 1,0.1")
	cmd.Flags().StringSlice("decays", nil, "Decay exponents, e.g. 0.5,1")
	cmd.Flags().Int("workers", 0, "Concurrent trials, 0 for the number of CPUs")
	keys := map[string]string{
		"function":   "tune.function",
		"dims":       "tune.dims",
		"seed":       "tune.seed",
		"optimizers": "tune.stoch",
		"alpha0s":    "tune.alpha0s",
		"decays":     "tune.decays",
		"workers":    "tune.workers",
	}

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return a.init(cmd, keys)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c := a.config.Tune
		logger := log.WithField("command", "tune")

		f, err := functions.Find(c.Function, c.Dims)
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(c.Seed))
		x0 := bench.StartingPoints(rng, 1, f.Size())[0]

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tw, "%s\talpha0\tdecay\ttuned f\tfinal f\tgnorm\t\n", f.Name())

		for _, kind := range c.Stoch {
			result, err := tune.Sweep(cmd.Context(), kind, f, x0, tune.Config{
				Alpha0s:   c.Alpha0s,
				Decays:    c.Decays,
				Epochs:    c.Epochs,
				EpochSize: c.EpochSize,
				Workers:   c.Workers,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			final := result.Config(a.config.Bench.Epochs, a.config.Bench.EpochSize)
			final.Callbacks = logging.Callbacks(logger.WithField("optimizer", kind.String()))
			state, err := optim.MinimizeStoch(kind, f.Problem(), x0, final)
			if err != nil {
				return err
			}

			logger.WithFields(log.Fields{
				"optimizer": kind.String(),
				"alpha0":    result.Best.Alpha0,
				"decay":     result.Best.Decay,
				"f":         state.F,
			}).Info("tuned")

			fmt.Fprintf(tw, "%s\t%g\t%g\t%.4g\t%.4g\t%.3g\t\n",
				kind, result.Best.Alpha0, result.Best.Decay,
				result.Best.State.F, state.F, state.GradNorm())
		}

		return tw.Flush()
	}
	return cmd
}
