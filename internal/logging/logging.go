// Package logging configures logrus and bridges it to the optimizer callbacks.
package logging

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/born-ml/minimize/internal/optim"
)

var formatters = map[string]func() log.Formatter{
	"text": func() log.Formatter { return &log.TextFormatter{ForceColors: true, FullTimestamp: true} },
	"json": func() log.Formatter { return &log.JSONFormatter{} },
	"plain": func() log.Formatter {
		return &log.TextFormatter{DisableColors: true, DisableTimestamp: true}
	},
}

// Config defines the logging configuration.
type Config struct {
	// Log level, e.g. info, debug
	Level string `mapstructure:"level"`
	// Logging format: text, json or plain
	Format string `mapstructure:"format"`
}

// DefaultConfig logs at info level in text format.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text"}
}

// Formats returns the supported log formats.
func Formats() []string {
	names := maps.Keys(formatters)
	slices.Sort(names)
	return names
}

// Validate checks the level and format.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Level); err != nil {
		return errors.WithStack(err)
	}
	if _, ok := formatters[strings.ToLower(c.Format)]; !ok {
		return errors.Errorf("unknown log format %q, expected one of %s", c.Format, strings.Join(Formats(), ", "))
	}
	return nil
}

// Configure applies c to the standard logger, writing to out.
func Configure(c Config, out io.Writer) error {
	return apply(log.StandardLogger(), c, out)
}

// New creates a logger configured with c, writing to out.
func New(c Config, out io.Writer) (*log.Logger, error) {
	logger := log.New()
	if err := apply(logger, c, out); err != nil {
		return nil, err
	}
	return logger, nil
}

func apply(logger *log.Logger, c Config, out io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	level, _ := log.ParseLevel(c.Level)

	logger.SetLevel(level)
	logger.SetFormatter(formatters[strings.ToLower(c.Format)]())
	logger.SetOutput(out)
	return nil
}

// Callbacks adapts the optimizer callbacks to entry: warnings and errors
// are logged at their level, progress at debug level with the iteration,
// function value and gradient norm as fields.
func Callbacks(entry *log.Entry) optim.Callbacks {
	return optim.Callbacks{
		Warn:  func(msg string) { entry.Warn(msg) },
		Error: func(msg string) { entry.Error(msg) },
		Progress: func(s *optim.State) {
			if !entry.Logger.IsLevelEnabled(log.DebugLevel) {
				return
			}
			entry.WithFields(log.Fields{
				"iteration": s.Iterations,
				"f":         s.F,
				"gnorm":     s.GradNorm(),
			}).Debug("progress")
		},
	}
}
