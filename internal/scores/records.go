package scores

// F1 is the metric compared by the significance tests.
const F1 = "f1"

// Record is one (configuration, metric) series with scores as percentages.
type Record struct {
	Config string    `json:"config"`
	Metric string    `json:"metric"`
	Scores []float64 `json:"scores"`
}

// BuildRecords flattens t into one Record per configuration and metric,
// configuration-major, scaling every raw score by 100.
func BuildRecords(t Table, metrics, configs []string) ([]Record, error) {
	records := make([]Record, 0, len(metrics)*len(configs))
	for _, config := range configs {
		for _, metric := range metrics {
			raw, err := t.Scores(metric, config)
			if err != nil {
				return nil, err
			}
			pct := make([]float64, len(raw))
			for i, r := range raw {
				pct[i] = r * 100
			}
			records = append(records, Record{Config: config, Metric: metric, Scores: pct})
		}
	}
	return records, nil
}

// ScoresFor concatenates the scores of every record matching config and
// metric, in record order.
func ScoresFor(records []Record, config, metric string) []float64 {
	var out []float64
	for _, r := range records {
		if r.Config == config && r.Metric == metric {
			out = append(out, r.Scores...)
		}
	}
	return out
}

func F1ScoresFor(records []Record, config string) []float64 {
	return ScoresFor(records, config, F1)
}
