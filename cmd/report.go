package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signalnine/evalstats/internal/report"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [results-file]",
		Short: "Print per-configuration summaries and the configured t-tests",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReport,
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}
	path := resolveInput(cfg, args)
	table, err := loadTable(path)
	if err != nil {
		return err
	}
	logger.Debug("generating report", zap.String("input", path), zap.String("format", cfg.Report.Format))
	return report.NewGenerator(cfg, logger).Generate(table, cfg.Report.Format, cmd.OutOrStdout())
}
