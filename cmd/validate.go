package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/signalnine/evalstats/internal/scores"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [results-file]",
		Short: "Check a results file covers every configured metric and configuration",
		Long:  "Load the results file and report every missing series, every series with fewer than two trials, and every raw score outside [0,1].",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := resolveInput(cfg, args)
			table, err := loadTable(path)
			if err != nil {
				return err
			}

			known := make(map[string]bool, len(cfg.Metrics))
			for _, m := range cfg.Metrics {
				known[m] = true
			}
			for _, m := range table.Metrics() {
				if !known[m] {
					logger.Warn("metric in results file is not configured", zap.String("metric", m), zap.String("path", path))
				}
			}

			problems := scores.Check(table, cfg.Metrics, cfg.Configurations)
			w := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(w, "  - %v\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) found in %s", len(problems), path)
			}
			fmt.Fprintf(w, "%s: %d configurations x %d metrics OK\n", path, len(cfg.Configurations), len(cfg.Metrics))
			return nil
		},
	}
}
