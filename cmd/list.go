package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured metrics, model configurations and comparisons",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Input: %s\n", resolveInput(cfg, nil))
			fmt.Fprintln(w, "\nMetrics:")
			for _, m := range cfg.Metrics {
				fmt.Fprintf(w, "  - %s\n", m)
			}
			fmt.Fprintln(w, "\nConfigurations:")
			for _, c := range cfg.Configurations {
				fmt.Fprintf(w, "  - %s\n", c)
			}
			fmt.Fprintln(w, "\nComparisons:")
			for _, c := range cfg.Comparisons {
				label := ""
				if c.Label != "" {
					label = fmt.Sprintf(" [tier %s]", c.Label)
				}
				fmt.Fprintf(w, "  - %s vs %s on %s%s\n", c.A, c.B, c.Metric, label)
			}
			return nil
		},
	}
}
