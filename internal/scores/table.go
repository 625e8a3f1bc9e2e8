package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrRead    = errors.New("reading scores")
	ErrParse   = errors.New("parsing scores")
	ErrMissing = errors.New("missing scores")
)

// Table maps metric -> model configuration -> raw per-trial scores in [0,1].
type Table map[string]map[string][]float64

// Load reads a score table from a JSON file, or YAML when the path ends
// in .yaml or .yml.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}
	var table Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &table)
	default:
		err = json.Unmarshal(data, &table)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParse, path, err)
	}
	if table == nil {
		return nil, fmt.Errorf("%w %s: document is empty", ErrParse, path)
	}
	return table, nil
}

// Scores returns the raw scores recorded for config under metric.
func (t Table) Scores(metric, config string) ([]float64, error) {
	byConfig, ok := t[metric]
	if !ok {
		return nil, fmt.Errorf("%w: no metric %q", ErrMissing, metric)
	}
	s, ok := byConfig[config]
	if !ok {
		return nil, fmt.Errorf("%w: no %q scores for %q", ErrMissing, metric, config)
	}
	return s, nil
}

// Metrics returns the metric names present in the table, sorted.
func (t Table) Metrics() []string {
	names := make([]string, 0, len(t))
	for m := range t {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}
