// Package root contains the root command for the application
package root

import (
	"sync"

	"fjacquet/cycle-spend/internal/config"
	"fjacquet/cycle-spend/internal/container"
	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/logging"
	"fjacquet/cycle-spend/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfigEnvVar names an alternative config file when --config is not given.
const ConfigEnvVar = "SPEND_CONFIG"

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	Categories string
	CycleStart int
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// AppContainer is wired by the persistent pre-run hook before any
	// subcommand runs.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "cycle-spend",
		Short: "Analyze card spending per billing cycle and category.",
		Long: `cycle-spend reads a transaction export, buckets spending into billing
cycles that start on a configurable day of the month, categorizes it with
keyword rules and reports per-cycle totals together with trend statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	initOnce sync.Once
)

// Init initializes the root command and all flags. It is safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.cycle-spend, .cycle-spend or .)")
		flags.StringVarP(&SharedFlags.Categories, "categories", "c", "", "Category rules file (JSON or YAML)")
		flags.IntVarP(&SharedFlags.CycleStart, "cycle-start", "s", cycle.MinStartDay, "Day of month (1-31) on which a billing cycle starts")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	})
}

// setup loads configuration, applies flag overrides and wires the container.
func setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnv(nil)

	path := SharedFlags.ConfigFile
	if path == "" {
		path = config.GetEnv(ConfigEnvVar, "")
	}
	cfg, err := config.InitializeConfigFile(path)
	if err != nil {
		return err
	}

	if err := ApplyOverrides(cmd.Flags(), cfg); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	AppContainer = c
	Log = c.GetLogger()

	Log.Debug("Configuration loaded",
		logging.Field{Key: logging.FieldStartDay, Value: cfg.Cycle.StartDay},
		logging.Field{Key: logging.FieldInputFile, Value: cfg.Input.Transactions})
	return nil
}

// ApplyOverrides copies explicitly set persistent flags into cfg. Flags
// take precedence over the config file and environment.
func ApplyOverrides(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("cycle-start") {
		cfg.Cycle.StartDay = SharedFlags.CycleStart
		if err := cycle.ValidateStartDay(cfg.Cycle.StartDay); err != nil {
			return err
		}
	}
	if flags.Changed("categories") {
		cfg.Input.Categories = SharedFlags.Categories
	}
	if flags.Changed("log-level") {
		if _, err := logrus.ParseLevel(SharedFlags.LogLevel); err != nil {
			return &parsererror.ConfigError{Key: "log.level", Value: SharedFlags.LogLevel, Reason: "unknown log level"}
		}
		cfg.Log.Level = SharedFlags.LogLevel
	}
	return nil
}
