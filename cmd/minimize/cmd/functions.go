package cmd

import (
	"fmt"
	"math/rand"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/minimize/internal/bench"
	"github.com/born-ml/minimize/internal/functions"
)

func functionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List the test functions",
		Long: `Lists the benchmark functions with their dimension, number of known
minima and the gradient accuracy at a random point.`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().Int("min-dims", 1, "Smallest dimension of the scalable functions")
	cmd.Flags().Int("max-dims", 8, "Largest dimension of the scalable functions")
	cmd.Flags().Int64("seed", 1, "Seed of the evaluation points")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		minDims, err := cmd.Flags().GetInt("min-dims")
		if err != nil {
			return err
		}
		maxDims, err := cmd.Flags().GetInt("max-dims")
		if err != nil {
			return err
		}
		seed, err := cmd.Flags().GetInt64("seed")
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(seed))
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "function\tdims\tminima\tgradient error\t")
		for _, f := range functions.Make(minDims, maxDims) {
			x := bench.StartingPoints(rng, 1, f.Size())[0]
			fmt.Fprintf(tw, "%s\t%d\t%d\t%.2g\t\n",
				f.Name(), f.Size(), len(f.Minima()), f.Problem().GradAccuracy(x))
		}
		return tw.Flush()
	}
	return cmd
}
