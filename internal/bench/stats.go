package bench

import (
	"time"

	"github.com/born-ml/minimize/internal/optim"
)

// Thresholds are the gradient norms above which a run counts as a failure
// at the corresponding precision.
var Thresholds = [...]float64{1e-3, 1e-4, 1e-5, 1e-6}

// Stats accumulates the outcome of the runs of one optimizer.
type Stats struct {
	Runs       int
	Converged  int
	Failures   [len(Thresholds)]int
	Time       time.Duration
	GradNorm   float64
	Iterations int
	FCalls     int
	GCalls     int
}

// Add records one run.
func (s *Stats) Add(state *optim.State, elapsed time.Duration) {
	gnorm := state.GradNorm()

	s.Runs++
	if state.Status == optim.StatusConverged {
		s.Converged++
	}
	for i, eps := range Thresholds {
		if !(gnorm <= eps) {
			s.Failures[i]++
		}
	}
	s.Time += elapsed
	s.GradNorm += gnorm
	s.Iterations += state.Iterations
	s.FCalls += state.FCalls
	s.GCalls += state.GCalls
}

// Merge adds the runs of other.
func (s *Stats) Merge(other *Stats) {
	s.Runs += other.Runs
	s.Converged += other.Converged
	for i := range s.Failures {
		s.Failures[i] += other.Failures[i]
	}
	s.Time += other.Time
	s.GradNorm += other.GradNorm
	s.Iterations += other.Iterations
	s.FCalls += other.FCalls
	s.GCalls += other.GCalls
}

func (s *Stats) mean(total float64) float64 {
	if s.Runs == 0 {
		return 0
	}
	return total / float64(s.Runs)
}

// MeanTime returns the average wall time per run.
func (s *Stats) MeanTime() time.Duration {
	return time.Duration(s.mean(float64(s.Time)))
}

// MeanGradNorm returns the average final gradient norm.
func (s *Stats) MeanGradNorm() float64 { return s.mean(s.GradNorm) }

// MeanIterations returns the average number of iterations.
func (s *Stats) MeanIterations() float64 { return s.mean(float64(s.Iterations)) }

// MeanFCalls returns the average number of function value evaluations.
func (s *Stats) MeanFCalls() float64 { return s.mean(float64(s.FCalls)) }

// MeanGCalls returns the average number of gradient evaluations.
func (s *Stats) MeanGCalls() float64 { return s.mean(float64(s.GCalls)) }
