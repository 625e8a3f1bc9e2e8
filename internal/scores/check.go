package scores

import (
	"fmt"
	"math"
)

// Check reports every problem that would make a report over metrics and
// configs fail or mislead: missing series, series too short for a
// t-test, and raw scores outside [0,1].
func Check(t Table, metrics, configs []string) []error {
	var errs []error
	for _, config := range configs {
		for _, metric := range metrics {
			raw, err := t.Scores(metric, config)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if len(raw) < 2 {
				errs = append(errs, fmt.Errorf("%s %s: %d score(s), need at least 2", config, metric, len(raw)))
			}
			for i, r := range raw {
				if math.IsNaN(r) || r < 0 || r > 1 {
					errs = append(errs, fmt.Errorf("%s %s: score %d is %v, want a fraction in [0,1]", config, metric, i, r))
				}
			}
		}
	}
	return errs
}
