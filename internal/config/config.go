// Package config loads the benchmark and tuning configuration.
//
// Values are resolved by viper in the usual order of precedence: command
// line flags, MINIMIZE_* environment variables (e.g. MINIMIZE_BENCH_TRIALS),
// an optional YAML file and finally the defaults below.
package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/born-ml/minimize/internal/logging"
	"github.com/born-ml/minimize/internal/optim"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "MINIMIZE"

// Config is the complete application configuration.
type Config struct {
	Logging logging.Config `mapstructure:"logging"`
	Bench   Bench          `mapstructure:"bench"`
	Tune    Tune           `mapstructure:"tune"`
}

// Bench configures the benchmark runner.
type Bench struct {
	// Dimensions of the scalable test functions, doubling from MinDims
	MinDims int `mapstructure:"minDims"`
	MaxDims int `mapstructure:"maxDims"`
	// Random starting points per function
	Trials int   `mapstructure:"trials"`
	Seed   int64 `mapstructure:"seed"`
	// Concurrent trials, 0 for the number of CPUs
	Workers int `mapstructure:"workers"`

	// Batch optimizers to compare, with their stopping criteria
	Batch         []optim.BatchKind `mapstructure:"batch"`
	MaxIterations int               `mapstructure:"maxIterations"`
	Epsilon       float64           `mapstructure:"epsilon"`

	// Stochastic optimizers to compare, with their budget
	Stoch     []optim.StochKind `mapstructure:"stoch"`
	Epochs    int               `mapstructure:"epochs"`
	EpochSize int               `mapstructure:"epochSize"`

	// Dump prometheus metrics after the benchmark
	Metrics bool `mapstructure:"metrics"`
}

// Tune configures the learning-rate sweep.
type Tune struct {
	// Test function name and dimension, e.g. "Sphere" and 4
	Function string `mapstructure:"function"`
	Dims     int    `mapstructure:"dims"`
	Seed     int64  `mapstructure:"seed"`

	Stoch     []optim.StochKind `mapstructure:"stoch"`
	Epochs    int               `mapstructure:"epochs"`
	EpochSize int               `mapstructure:"epochSize"`

	// Grid of initial learning rates and decay exponents
	Alpha0s []float64 `mapstructure:"alpha0s"`
	Decays  []float64 `mapstructure:"decays"`

	// Concurrent trials, 0 for the number of CPUs
	Workers int `mapstructure:"workers"`
}

func batchNames() []string {
	var names []string
	for _, k := range optim.BatchKinds() {
		names = append(names, k.String())
	}
	return names
}

func stochNames() []string {
	var names []string
	for _, k := range optim.StochKinds() {
		names = append(names, k.String())
	}
	return names
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("bench.minDims", 1)
	v.SetDefault("bench.maxDims", 8)
	v.SetDefault("bench.trials", 16)
	v.SetDefault("bench.seed", 1)
	v.SetDefault("bench.workers", 0)
	v.SetDefault("bench.batch", batchNames())
	v.SetDefault("bench.maxIterations", 1000)
	v.SetDefault("bench.epsilon", 1e-6)
	v.SetDefault("bench.stoch", stochNames())
	v.SetDefault("bench.epochs", 10)
	v.SetDefault("bench.epochSize", 100)
	v.SetDefault("bench.metrics", false)

	v.SetDefault("tune.function", "Sphere")
	v.SetDefault("tune.dims", 4)
	v.SetDefault("tune.seed", 1)
	v.SetDefault("tune.stoch", stochNames())
	v.SetDefault("tune.epochs", 1)
	v.SetDefault("tune.epochSize", 100)
	v.SetDefault("tune.alpha0s", []float64{1, 1e-1, 1e-2, 1e-3})
	v.SetDefault("tune.decays", []float64{0.5, 0.75, 1})
	v.SetDefault("tune.workers", 0)
}

// NewViper returns a viper instance with the defaults and the environment
// bindings in place.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional YAML file at path into v, then decodes and
// validates the configuration.
func Load(v *viper.Viper, path string) (Config, error) {
	var c Config

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return c, errors.Wrapf(err, "reading config %s", path)
		}
	}

	if err := v.Unmarshal(&c, CustomHooks...); err != nil {
		return c, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// CustomHooks decode optimizer names and comma separated lists.
var CustomHooks = []viper.DecoderConfigOption{
	viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		BatchKindHookFunc(),
		StochKindHookFunc(),
	)),
}
