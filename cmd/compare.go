package cmd

import (
	"github.com/spf13/cobra"

	"github.com/signalnine/evalstats/internal/report"
	"github.com/signalnine/evalstats/internal/scores"
)

var flagMetric string

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <config-a> <config-b>",
		Short: "Run Welch's t-test between two model configurations",
		Example: `  evalstats compare relu-64 linkact-64
  evalstats compare tanh-32 relu-32 --metric accuracy --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyOverrides(cmd, cfg); err != nil {
				return err
			}
			table, err := loadTable(resolveInput(cfg, nil))
			if err != nil {
				return err
			}
			rep, err := report.NewGenerator(cfg, logger).Compare(table, args[0], args[1], flagMetric)
			if err != nil {
				return err
			}
			return report.Write(rep, cfg.Report.Format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&flagMetric, "metric", scores.F1, "metric to compare")
	return cmd
}
