package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/signalnine/evalstats/internal/config"
	"github.com/signalnine/evalstats/internal/scores"
)

var (
	cfgFile    string
	inputFile  string
	flagFormat string
	flagAlpha  float64
	verbose    bool

	env    *viper.Viper
	logger = zap.NewNop()
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "evalstats [results-file]",
		Short: "Summarize model evaluation scores and test F1 differences between configurations",
		Long: `Reads per-trial accuracy, sensitivity, specificity and F1 scores for a set of
model configurations, prints mean and population standard deviation for each,
and runs Welch's t-test on F1 scores for each configured pair.

Without arguments it reads ` + config.DefaultInput + ` from the working directory.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runReport,
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	root.PersistentFlags().StringVar(&inputFile, "input", "", "results file (overrides the config input)")
	root.PersistentFlags().StringVar(&flagFormat, "format", "", "output format (text, table, markdown, json)")
	root.PersistentFlags().Float64Var(&flagAlpha, "alpha", 0, "significance level for t-tests (overrides the config alpha)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		env = viper.New()
		env.SetEnvPrefix("evalstats")
		for _, key := range []string{"config", "input", "log_level"} {
			if err := env.BindEnv(key); err != nil {
				return fmt.Errorf("binding %s: %w", key, err)
			}
		}
		env.SetDefault("log_level", "warn")
		for _, key := range []string{"config", "input"} {
			if err := env.BindPFlag(key, root.PersistentFlags().Lookup(key)); err != nil {
				return fmt.Errorf("binding --%s: %w", key, err)
			}
		}

		level := env.GetString("log_level")
		if verbose {
			level = "debug"
		}
		l, err := newLogger(level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	}

	root.AddCommand(newReportCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	return zc.Build()
}

// loadConfig reads the config file, falling back to config.Default when
// no config was asked for and the default path does not exist. A missing
// file named by --config or EVALSTATS_CONFIG is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := config.DefaultPath
	if env != nil {
		path = env.GetString("config")
	}
	explicit := changed(cmd, "config") || os.Getenv("EVALSTATS_CONFIG") != ""
	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no config file, using defaults", zap.String("path", path))
			return config.Default(), nil
		}
		return nil, err
	}
	logger.Debug("loaded config", zap.String("path", path))
	return cfg, nil
}

// applyOverrides folds --format and --alpha into cfg.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if flagFormat != "" {
		if !config.ValidFormat(flagFormat) {
			return fmt.Errorf("unknown format %q (want one of %v)", flagFormat, config.Formats)
		}
		cfg.Report.Format = flagFormat
	}
	if changed(cmd, "alpha") {
		if flagAlpha <= 0 || flagAlpha >= 1 {
			return fmt.Errorf("alpha must be between 0 and 1, got %v", flagAlpha)
		}
		cfg.Alpha = flagAlpha
	}
	return nil
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// resolveInput picks the results file: positional argument, then
// --input or EVALSTATS_INPUT, then the config.
func resolveInput(cfg *config.Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if env != nil {
		if in := env.GetString("input"); in != "" {
			return in
		}
	}
	return cfg.Input
}

func loadTable(path string) (scores.Table, error) {
	table, err := scores.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded scores", zap.String("path", path), zap.Strings("metrics", table.Metrics()))
	return table, nil
}
