package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/signalnine/evalstats/internal/config"
	"github.com/signalnine/evalstats/internal/scores"
	"github.com/signalnine/evalstats/internal/stats"
)

type Summary struct {
	Config string `json:"config"`
	Metric string `json:"metric"`
	stats.Summary
}

type Comparison struct {
	Label  string `json:"label,omitempty"`
	A      string `json:"a"`
	B      string `json:"b"`
	Metric string `json:"metric"`
	stats.TTestResult
}

type Report struct {
	Summaries   []Summary    `json:"summaries"`
	Comparisons []Comparison `json:"comparisons"`
}

// Generator turns a score table into a Report using the enumerations and
// comparisons of a config.Config.
type Generator struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{cfg: cfg, logger: logger}
}

// Generate builds the report for table and writes it to w.
func (g *Generator) Generate(table scores.Table, format string, w io.Writer) error {
	rep, err := g.Build(table)
	if err != nil {
		return err
	}
	return Write(rep, format, w)
}

// Build summarizes every configured (configuration, metric) pair and runs
// every configured comparison.
func (g *Generator) Build(table scores.Table) (*Report, error) {
	records, err := scores.BuildRecords(table, g.cfg.Metrics, g.cfg.Configurations)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("built records",
		zap.Int("records", len(records)),
		zap.Int("configurations", len(g.cfg.Configurations)),
		zap.Int("metrics", len(g.cfg.Metrics)))

	rep := &Report{}
	for _, name := range g.cfg.Configurations {
		for _, metric := range g.cfg.Metrics {
			s, err := stats.Summarize(scores.ScoresFor(records, name, metric))
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", name, metric, err)
			}
			rep.Summaries = append(rep.Summaries, Summary{Config: name, Metric: metric, Summary: s})
		}
	}

	for _, c := range g.cfg.Comparisons {
		cmp, err := g.compare(records, c)
		if err != nil {
			return nil, err
		}
		rep.Comparisons = append(rep.Comparisons, *cmp)
	}
	return rep, nil
}

// Compare runs a single t-test of a against b on metric, outside the
// configured comparisons. The report carries both summaries.
func (g *Generator) Compare(table scores.Table, a, b, metric string) (*Report, error) {
	if a == b {
		return nil, fmt.Errorf("%w: %q compared with itself", stats.ErrInvalidInput, a)
	}
	configs := []string{a, b}
	records, err := scores.BuildRecords(table, []string{metric}, configs)
	if err != nil {
		return nil, err
	}
	rep := &Report{}
	for _, name := range configs {
		s, err := stats.Summarize(scores.ScoresFor(records, name, metric))
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", name, metric, err)
		}
		rep.Summaries = append(rep.Summaries, Summary{Config: name, Metric: metric, Summary: s})
	}
	cmp, err := g.compare(records, config.Comparison{A: a, B: b, Metric: metric})
	if err != nil {
		return nil, err
	}
	rep.Comparisons = []Comparison{*cmp}
	return rep, nil
}

func (g *Generator) compare(records []scores.Record, c config.Comparison) (*Comparison, error) {
	var sa, sb []float64
	if c.Metric == scores.F1 {
		sa, sb = scores.F1ScoresFor(records, c.A), scores.F1ScoresFor(records, c.B)
	} else {
		sa, sb = scores.ScoresFor(records, c.A, c.Metric), scores.ScoresFor(records, c.B, c.Metric)
	}
	res, err := stats.TTestAlpha(sa, sb, g.cfg.Alpha)
	if err != nil {
		return nil, fmt.Errorf("comparing %s and %s on %s: %w", c.A, c.B, c.Metric, err)
	}
	g.logger.Debug("t-test",
		zap.String("a", c.A),
		zap.String("b", c.B),
		zap.String("metric", c.Metric),
		zap.Float64("t", res.TStatistic),
		zap.Float64("p", res.PValue),
		zap.Float64("df", res.DegreesOfFreedom))
	return &Comparison{Label: c.Label, A: c.A, B: c.B, Metric: c.Metric, TTestResult: res}, nil
}

// Write renders rep in the given format: text, table, markdown or json.
func Write(rep *Report, format string, w io.Writer) error {
	switch format {
	case "text", "":
		return writeText(rep, w)
	case "table":
		return writeTable(rep, w)
	case "markdown":
		return writeMarkdown(rep, w)
	case "json":
		return writeJSON(rep, w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeText(rep *Report, w io.Writer) error {
	for _, s := range rep.Summaries {
		if _, err := fmt.Fprintf(w, "%s %s mean (std): %.4f (%.4f)\n", s.Config, s.Metric, s.Mean, s.StdDev); err != nil {
			return err
		}
	}
	for _, c := range rep.Comparisons {
		if _, err := fmt.Fprintf(w, "[%s, %s]\nt-statistic: %.4f, p-value: %.4f\n",
			c.A, c.B, c.TStatistic, c.PValue); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(rep *Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFIG\tMETRIC\tN\tMEAN\tSTD")
	fmt.Fprintln(tw, strings.Repeat("-", 48))
	for _, s := range rep.Summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%.4f\n", s.Config, s.Metric, s.N, s.Mean, s.StdDev)
	}
	if len(rep.Comparisons) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "A\tB\tMETRIC\tT\tDF\tP\tSIGNIFICANT")
		fmt.Fprintln(tw, strings.Repeat("-", 72))
		for _, c := range rep.Comparisons {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%.2f\t%.4f\t%s\n",
				c.A, c.B, c.Metric, c.TStatistic, c.DegreesOfFreedom, c.PValue, yesNo(c.Significant, c.Alpha))
		}
	}
	return tw.Flush()
}

func writeMarkdown(rep *Report, w io.Writer) error {
	fmt.Fprintln(w, "| Config | Metric | N | Mean | Std |")
	fmt.Fprintln(w, "|---|---|---|---|---|")
	for _, s := range rep.Summaries {
		fmt.Fprintf(w, "| %s | %s | %d | %.4f | %.4f |\n", s.Config, s.Metric, s.N, s.Mean, s.StdDev)
	}
	if len(rep.Comparisons) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| A | B | Metric | t | df | p | Significant |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|")
	for _, c := range rep.Comparisons {
		fmt.Fprintf(w, "| %s | %s | %s | %.4f | %.2f | %.4f | %s |\n",
			c.A, c.B, c.Metric, c.TStatistic, c.DegreesOfFreedom, c.PValue, yesNo(c.Significant, c.Alpha))
	}
	return nil
}

func writeJSON(rep *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func yesNo(significant bool, alpha float64) string {
	if significant {
		return fmt.Sprintf("yes (p < %g)", alpha)
	}
	return "no"
}
