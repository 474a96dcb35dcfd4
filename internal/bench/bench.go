// Package bench compares optimizers on the test functions from random
// starting points.
package bench

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/born-ml/minimize/internal/functions"
	"github.com/born-ml/minimize/internal/metrics"
	"github.com/born-ml/minimize/internal/optim"
	"github.com/born-ml/minimize/internal/parallel"
)

// Config controls a benchmark.
type Config struct {
	Trials   int             // Random starting points per function (default: 16)
	Seed     int64           // Seed of the starting points
	Parallel parallel.Config // Distribution of the trials over goroutines

	// Optional collaborators.
	Metrics *metrics.Metrics
	Logger  *log.Entry
}

// FunctionReport holds the statistics of every optimizer on one function.
type FunctionReport struct {
	Function string
	Stats    map[string]*Stats
}

// Report is the outcome of a benchmark.
type Report struct {
	ID        uuid.UUID
	Functions []FunctionReport
	Total     map[string]*Stats
}

// StartingPoints draws trials points uniformly in [-1, 1]^n.
func StartingPoints(rng *rand.Rand, trials, n int) [][]float64 {
	points := make([][]float64, trials)
	for t := range points {
		x := make([]float64, n)
		for i := range x {
			x[i] = 2*rng.Float64() - 1
		}
		points[t] = x
	}
	return points
}

// Run benchmarks every optimizer on every function.
//
// Trials of a function run concurrently according to config.Parallel; each
// run gets a fresh Problem so the call counters are per run. Statistics are
// aggregated in trial order, so the report does not depend on scheduling
// except for the timings.
func Run(funcs []functions.Function, opts []Optimizer, config Config) *Report {
	if config.Trials <= 0 {
		config.Trials = 16
	}

	report := &Report{
		ID:    uuid.New(),
		Total: make(map[string]*Stats),
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	logger = logger.WithField("run", report.ID.String())

	rng := rand.New(rand.NewSource(config.Seed))
	for _, f := range funcs {
		points := StartingPoints(rng, config.Trials, f.Size())

		type outcome struct {
			state   *optim.State
			elapsed time.Duration
		}
		outcomes := make([][]outcome, len(points))

		parallel.For(len(points), func(t int) {
			outcomes[t] = make([]outcome, len(opts))
			for o, opt := range opts {
				start := time.Now()
				state := opt.Run(f.Problem(), points[t])
				elapsed := time.Since(start)

				outcomes[t][o] = outcome{state: state, elapsed: elapsed}
				if config.Metrics != nil {
					config.Metrics.RecordRun(opt.Name, state, elapsed)
				}
			}
		}, config.Parallel)

		fr := FunctionReport{Function: f.Name(), Stats: make(map[string]*Stats)}
		for _, opt := range opts {
			fr.Stats[opt.Name] = &Stats{}
			if _, ok := report.Total[opt.Name]; !ok {
				report.Total[opt.Name] = &Stats{}
			}
		}
		for t := range outcomes {
			for o, opt := range opts {
				fr.Stats[opt.Name].Add(outcomes[t][o].state, outcomes[t][o].elapsed)
			}
		}
		for name, s := range fr.Stats {
			report.Total[name].Merge(s)
		}
		report.Functions = append(report.Functions, fr)

		logger.WithFields(log.Fields{
			"function": f.Name(),
			"trials":   len(points),
		}).Debug("function benchmarked")
	}

	return report
}

// Ranking returns the optimizer names ordered by increasing failures at the
// finest threshold, then by mean gradient norm, then by name.
func Ranking(stats map[string]*Stats) []string {
	names := maps.Keys(stats)
	last := len(Thresholds) - 1
	slices.SortFunc(names, func(a, b string) bool {
		sa, sb := stats[a], stats[b]
		if sa.Failures[last] != sb.Failures[last] {
			return sa.Failures[last] < sb.Failures[last]
		}
		if sa.MeanGradNorm() != sb.MeanGradNorm() {
			return sa.MeanGradNorm() < sb.MeanGradNorm()
		}
		return a < b
	})
	return names
}

// WriteTable writes one table per function followed by the totals.
func (r *Report) WriteTable(w io.Writer) error {
	for _, fr := range r.Functions {
		if err := writeTable(w, fr.Function, fr.Stats); err != nil {
			return err
		}
	}
	return writeTable(w, "Total", r.Total)
}

func writeTable(w io.Writer, title string, stats map[string]*Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{title, "runs", "converged", "time", "gnorm"}
	for _, eps := range Thresholds {
		header = append(header, fmt.Sprintf(">%g", eps))
	}
	header = append(header, "iterations", "fcalls", "gcalls")
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, name := range Ranking(stats) {
		s := stats[name]
		row := []string{
			name,
			fmt.Sprint(s.Runs),
			fmt.Sprint(s.Converged),
			s.MeanTime().Round(time.Microsecond).String(),
			fmt.Sprintf("%.3g", s.MeanGradNorm()),
		}
		for _, f := range s.Failures {
			row = append(row, fmt.Sprint(f))
		}
		row = append(row,
			fmt.Sprintf("%.1f", s.MeanIterations()),
			fmt.Sprintf("%.1f", s.MeanFCalls()),
			fmt.Sprintf("%.1f", s.MeanGCalls()),
		)
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	fmt.Fprintln(tw)

	return tw.Flush()
}
