package cmd

import (
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/born-ml/minimize/internal/bench"
	"github.com/born-ml/minimize/internal/config"
	"github.com/born-ml/minimize/internal/functions"
	"github.com/born-ml/minimize/internal/logging"
	"github.com/born-ml/minimize/internal/metrics"
	"github.com/born-ml/minimize/internal/optim"
	"github.com/born-ml/minimize/internal/parallel"
)

func benchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare optimizers on the test functions",
	}

	cmd.AddCommand(
		benchBatchCmd(a),
		benchStochCmd(a),
	)
	return cmd
}

// benchFlags registers the flags shared by the bench subcommands and
// returns their configuration keys.
func benchFlags(cmd *cobra.Command) map[string]string {
	cmd.Flags().Int("min-dims", 1, "Smallest dimension of the scalable functions")
	cmd.Flags().Int("max-dims", 8, "Largest dimension of the scalable functions")
	cmd.Flags().Int("trials", 16, "Random starting points per function")
	cmd.Flags().Int64("seed", 1, "Seed of the starting points")
	cmd.Flags().Int("workers", 0, "Concurrent trials, 0 for the number of CPUs")
	cmd.Flags().Bool("metrics", false, "Print prometheus metrics after the benchmark")

	return map[string]string{
		"min-dims": "bench.minDims",
		"max-dims": "bench.maxDims",
		"trials":   "bench.trials",
		"seed":     "bench.seed",
		"workers":  "bench.workers",
		"metrics":  "bench.metrics",
	}
}

func benchBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Benchmark the line-search optimizers",
		Args:  cobra.NoArgs,
	}

	keys := benchFlags(cmd)
	cmd.Flags().StringSlice("optimizers", nil, "Optimizers to compare (default all)")
	cmd.Flags().Int("max-iterations", 1000, "Iteration budget per run")
	cmd.Flags().Float64("epsilon", 1e-6, "Gradient norm tolerance")
	keys["optimizers"] = "bench.batch"
	keys["max-iterations"] = "bench.maxIterations"
	keys["epsilon"] = "bench.epsilon"

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return a.init(cmd, keys)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c := a.config.Bench
		logger := log.WithField("command", "bench batch")

		opts, err := bench.BatchOptimizers(c.Batch, optim.BatchConfig{
			MaxIterations: c.MaxIterations,
			Epsilon:       c.Epsilon,
			Callbacks:     logging.Callbacks(logger),
		})
		if err != nil {
			return err
		}
		return runBench(cmd, c, opts, logger)
	}
	return cmd
}

func benchStochCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stoch",
		Short: "Benchmark the stochastic optimizers",
		Args:  cobra.NoArgs,
	}

	keys := benchFlags(cmd)
	cmd.Flags().StringSlice("optimizers", nil, "Optimizers to compare (default all)")
	cmd.Flags().Int("epochs", 10, "Epochs per run")
	cmd.Flags().Int("epoch-size", 100, "Updates per epoch")
	keys["optimizers"] = "bench.stoch"
	keys["epochs"] = "bench.epochs"
	keys["epoch-size"] = "bench.epochSize"

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return a.init(cmd, keys)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c := a.config.Bench
		logger := log.WithField("command", "bench stoch")

		opts, err := bench.StochOptimizers(c.Stoch, optim.StochConfig{
			Epochs:    c.Epochs,
			EpochSize: c.EpochSize,
			Callbacks: logging.Callbacks(logger),
		})
		if err != nil {
			return err
		}
		return runBench(cmd, c, opts, logger)
	}
	return cmd
}

func runBench(cmd *cobra.Command, c config.Bench, opts []bench.Optimizer, logger *log.Entry) error {
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var m *metrics.Metrics
	if c.Metrics {
		m = metrics.New()
	}

	funcs := functions.Make(c.MinDims, c.MaxDims)
	logger.WithFields(log.Fields{
		"functions":  len(funcs),
		"optimizers": len(opts),
		"trials":     c.Trials,
		"workers":    workers,
	}).Info("starting benchmark")

	report := bench.Run(funcs, opts, bench.Config{
		Trials: c.Trials,
		Seed:   c.Seed,
		Parallel: parallel.Config{
			Enabled:      workers > 1,
			NumWorkers:   workers,
			MinChunkSize: 1,
		},
		Metrics: m,
		Logger:  logger,
	})

	logger.WithField("run", report.ID.String()).Info("benchmark finished")

	if err := report.WriteTable(cmd.OutOrStdout()); err != nil {
		return err
	}
	if m != nil {
		return m.WriteText(cmd.OutOrStdout())
	}
	return nil
}
