package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath  = "evalstats.yaml"
	DefaultInput = "linkvsrelu-visual.json"
	DefaultAlpha = 0.05
)

// Formats lists the report formats understood by internal/report.
var Formats = []string{"text", "table", "markdown", "json"}

type Config struct {
	Input          string       `yaml:"input"`
	Metrics        []string     `yaml:"metrics"`
	Configurations []string     `yaml:"configurations"`
	Comparisons    []Comparison `yaml:"comparisons"`
	Alpha          float64      `yaml:"alpha"`
	Report         Report       `yaml:"report"`
}

// Comparison names two configurations whose scores are t-tested.
type Comparison struct {
	Label  string `yaml:"label"`
	A      string `yaml:"a"`
	B      string `yaml:"b"`
	Metric string `yaml:"metric"`
}

type Report struct {
	Format string `yaml:"format"`
}

// Default returns the configuration used when no config file exists:
// every metric and configuration of the linkact vs relu study, with
// tanh compared against linkact in both tiers.
func Default() *Config {
	cfg := &Config{}
	// defaults alone always validate
	_ = validate(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = []string{"accuracy", "sensitivity", "specificity", "f1"}
	}
	if len(cfg.Configurations) == 0 {
		cfg.Configurations = []string{
			"rand-32", "relu-32", "tanh-32", "linkact-32",
			"rand-64", "relu-64", "tanh-64", "linkact-64",
		}
	}
	if cfg.Comparisons == nil {
		cfg.Comparisons = []Comparison{
			{Label: "32", A: "tanh-32", B: "linkact-32"},
			{Label: "64", A: "tanh-64", B: "linkact-64"},
		}
	}
	if cfg.Alpha == 0 {
		cfg.Alpha = DefaultAlpha
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = "text"
	}

	metrics, err := index("metric", cfg.Metrics)
	if err != nil {
		return err
	}
	configs, err := index("configuration", cfg.Configurations)
	if err != nil {
		return err
	}
	for i := range cfg.Comparisons {
		c := &cfg.Comparisons[i]
		if c.Metric == "" {
			c.Metric = "f1"
		}
		if !configs[c.A] {
			return fmt.Errorf("comparison %d: unknown configuration %q", i, c.A)
		}
		if !configs[c.B] {
			return fmt.Errorf("comparison %d: unknown configuration %q", i, c.B)
		}
		if c.A == c.B {
			return fmt.Errorf("comparison %d: %q compared with itself", i, c.A)
		}
		if !metrics[c.Metric] {
			return fmt.Errorf("comparison %d: unknown metric %q", i, c.Metric)
		}
	}
	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		return fmt.Errorf("alpha must be between 0 and 1, got %v", cfg.Alpha)
	}
	if !ValidFormat(cfg.Report.Format) {
		return fmt.Errorf("unknown report format %q", cfg.Report.Format)
	}
	return nil
}

func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func index(kind string, names []string) (map[string]bool, error) {
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("%s %d: name is required", kind, i)
		}
		if seen[n] {
			return nil, fmt.Errorf("duplicate %s %q", kind, n)
		}
		seen[n] = true
	}
	return seen, nil
}
