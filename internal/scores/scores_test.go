package scores_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/signalnine/evalstats/internal/scores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	allMetrics = []string{"accuracy", "sensitivity", "specificity", "f1"}
	allConfigs = []string{"rand-32", "relu-32", "tanh-32", "linkact-32", "rand-64", "relu-64", "tanh-64", "linkact-64"}
)

func TestLoadJSON(t *testing.T) {
	table, err := scores.Load("../../testdata/results.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"accuracy", "f1", "sensitivity", "specificity"}, table.Metrics())
	for _, m := range allMetrics {
		assert.Len(t, table[m], len(allConfigs), "metric %s", m)
	}
	got, err := table.Scores("f1", "tanh-32")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.77, 0.7761, 0.7741, 0.7845, 0.771}, got)
}

func TestLoadYAML(t *testing.T) {
	table, err := scores.Load("../../testdata/results.yaml")
	require.NoError(t, err)
	got, err := table.Scores("f1", "linkact-32")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.85, 0.87, 0.86}, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := scores.Load("nonexistent.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, scores.ErrRead))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, scores.ErrParse))
}

func TestLoadMalformed(t *testing.T) {
	_, err := scores.Load("../../testdata/malformed.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, scores.ErrParse)
	assert.NotErrorIs(t, err, scores.ErrRead)
}

func TestLoadWrongShape(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"array.json":  `[0.1, 0.2]`,
		"null.json":   `null`,
		"string.json": `{"f1": {"relu-32": ["high"]}}`,
		"empty.yaml":  ``,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			_, err := scores.Load(path)
			assert.ErrorIs(t, err, scores.ErrParse)
		})
	}
}

func TestBuildRecordsOrderAndScaling(t *testing.T) {
	table := scores.Table{
		"accuracy": {"a-32": {0.5, 0.25}, "b-32": {1, 0}},
		"f1":       {"a-32": {0.8, 0.82, 0.78}, "b-32": {0.85}},
	}
	records, err := scores.BuildRecords(table, []string{"accuracy", "f1"}, []string{"b-32", "a-32"})
	require.NoError(t, err)
	require.Len(t, records, 4)

	var order [][2]string
	for _, r := range records {
		order = append(order, [2]string{r.Config, r.Metric})
	}
	assert.Equal(t, [][2]string{
		{"b-32", "accuracy"}, {"b-32", "f1"},
		{"a-32", "accuracy"}, {"a-32", "f1"},
	}, order)

	assert.Equal(t, []float64{100, 0}, records[0].Scores)
	assert.Equal(t, []float64{50, 25}, records[2].Scores)
	for i, raw := range table["f1"]["a-32"] {
		assert.InDelta(t, raw*100, records[3].Scores[i], 1e-9)
	}
}

func TestBuildRecordsDoesNotMutateTable(t *testing.T) {
	table := scores.Table{"f1": {"a-32": {0.5, 0.6}}}
	_, err := scores.BuildRecords(table, []string{"f1"}, []string{"a-32"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.6}, table["f1"]["a-32"])
}

func TestBuildRecordsMissing(t *testing.T) {
	table, err := scores.Load("../../testdata/incomplete.json")
	require.NoError(t, err)

	_, err = scores.BuildRecords(table, allMetrics, allConfigs)
	require.Error(t, err)
	assert.ErrorIs(t, err, scores.ErrMissing)
	assert.Contains(t, err.Error(), "linkact-64")

	_, err = scores.BuildRecords(table, []string{"precision"}, []string{"relu-32"})
	assert.ErrorIs(t, err, scores.ErrMissing)
}

func TestBuildRecordsFullTable(t *testing.T) {
	table, err := scores.Load("../../testdata/results.json")
	require.NoError(t, err)
	records, err := scores.BuildRecords(table, allMetrics, allConfigs)
	require.NoError(t, err)
	assert.Len(t, records, len(allMetrics)*len(allConfigs))
	assert.Equal(t, "rand-32", records[0].Config)
	assert.Equal(t, "accuracy", records[0].Metric)
	assert.Equal(t, "linkact-64", records[len(records)-1].Config)
	assert.Equal(t, "f1", records[len(records)-1].Metric)
}

func TestScoresFor(t *testing.T) {
	records := []scores.Record{
		{Config: "tanh-32", Metric: "f1", Scores: []float64{80, 82}},
		{Config: "tanh-32", Metric: "accuracy", Scores: []float64{90}},
		{Config: "linkact-32", Metric: "f1", Scores: []float64{85}},
		{Config: "tanh-32", Metric: "f1", Scores: []float64{78}},
	}

	tests := []struct {
		name   string
		config string
		metric string
		want   []float64
	}{
		{"concatenates in record order", "tanh-32", "f1", []float64{80, 82, 78}},
		{"single match", "tanh-32", "accuracy", []float64{90}},
		{"no match", "relu-32", "f1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scores.ScoresFor(records, tt.config, tt.metric))
		})
	}

	assert.Equal(t, []float64{85}, scores.F1ScoresFor(records, "linkact-32"))
	assert.Equal(t, []float64{80, 82, 78}, scores.F1ScoresFor(records, "tanh-32"))
}

func TestCheck(t *testing.T) {
	table := scores.Table{
		"f1": {
			"ok-32":    {0.8, 0.9},
			"short-32": {0.8},
			"range-32": {0.8, 1.2, -0.1},
		},
	}
	errs := scores.Check(table, []string{"f1", "accuracy"}, []string{"ok-32", "short-32", "range-32"})

	// accuracy missing for all three, one short series, two out-of-range scores
	require.Len(t, errs, 6)
	var missing int
	for _, err := range errs {
		if errors.Is(err, scores.ErrMissing) {
			missing++
		}
	}
	assert.Equal(t, 3, missing)

	assert.Empty(t, scores.Check(table, []string{"f1"}, []string{"ok-32"}))
}
