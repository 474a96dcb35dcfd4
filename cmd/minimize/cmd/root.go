package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/born-ml/minimize/internal/config"
	"github.com/born-ml/minimize/internal/logging"
)

// app is the state shared by the commands of one invocation.
type app struct {
	v      *viper.Viper
	config config.Config
}

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:           "minimize",
		Short:         "minimize benchmarks and tunes unconstrained numerical optimizers.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().String("config", "", "YAML configuration file")
	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "text", "Log format: "+strings.Join(logging.Formats(), ", "))

	cmd.AddCommand(
		benchCmd(a),
		tuneCmd(a),
		functionsCmd(),
		versionCmd(),
	)

	return cmd
}

// init binds the flags of cmd to their configuration keys, loads the
// configuration and sets up logging.
func (a *app) init(cmd *cobra.Command, keys map[string]string) error {
	keys["log-level"] = "logging.level"
	keys["log-format"] = "logging.format"
	if err := bindFlags(a.v, cmd.Flags(), keys); err != nil {
		return err
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return errors.WithStack(err)
	}
	a.config, err = config.Load(a.v, path)
	if err != nil {
		return err
	}

	return logging.Configure(a.config.Logging, cmd.ErrOrStderr())
}

// bindFlags binds each flag name to its configuration key.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return errors.Errorf("unknown flag %q", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "binding flag %s", name)
		}
	}
	return nil
}
