package stats

import (
	"errors"
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the significance level used when none is configured.
const DefaultAlpha = 0.05

var (
	// ErrInvalidInput is returned when a sample is too small for the statistic.
	ErrInvalidInput = errors.New("invalid input")

	// ErrZeroVariance is returned by TTest when both samples are constant.
	ErrZeroVariance = fmt.Errorf("%w: samples have zero variance", ErrInvalidInput)
)

type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
}

type TTestResult struct {
	TStatistic       float64 `json:"t_statistic"`
	PValue           float64 `json:"p_value"`
	DegreesOfFreedom float64 `json:"df"`
	Alpha            float64 `json:"alpha"`
	Significant      bool    `json:"significant"`
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("mean of empty sample: %w", ErrInvalidInput)
	}
	m, err := mstats.Mean(xs)
	if err != nil {
		return 0, fmt.Errorf("mean: %w: %v", ErrInvalidInput, err)
	}
	return m, nil
}

// StandardDeviation returns the population standard deviation of xs:
// the square root of the mean squared deviation, dividing by N rather
// than N-1. Reported spreads are compared against earlier runs that used
// the biased estimator, so this must not be switched to the sample form.
func StandardDeviation(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("standard deviation of empty sample: %w", ErrInvalidInput)
	}
	sd, err := mstats.StandardDeviationPopulation(xs)
	if err != nil {
		return 0, fmt.Errorf("standard deviation: %w: %v", ErrInvalidInput, err)
	}
	return sd, nil
}

func Summarize(xs []float64) (Summary, error) {
	m, err := Mean(xs)
	if err != nil {
		return Summary{}, err
	}
	sd, err := StandardDeviation(xs)
	if err != nil {
		return Summary{}, err
	}
	return Summary{N: len(xs), Mean: m, StdDev: sd}, nil
}

// TTest runs Welch's two-sample t-test at DefaultAlpha.
func TTest(a, b []float64) (TTestResult, error) {
	return TTestAlpha(a, b, DefaultAlpha)
}

// TTestAlpha runs Welch's unequal-variance t-test of a against b.
//
// The statistic is (mean(a) - mean(b)) / sqrt(var(a)/na + var(b)/nb)
// with unbiased sample variances. The p-value is two-tailed against a
// Student's t distribution with Welch-Satterthwaite degrees of freedom.
func TTestAlpha(a, b []float64, alpha float64) (TTestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, fmt.Errorf("t-test needs at least 2 observations per sample, got %d and %d: %w",
			len(a), len(b), ErrInvalidInput)
	}

	na, nb := float64(len(a)), float64(len(b))
	va := stat.Variance(a, nil) / na
	vb := stat.Variance(b, nil) / nb

	se := math.Sqrt(va + vb)
	if se == 0 {
		return TTestResult{}, ErrZeroVariance
	}

	t := (stat.Mean(a, nil) - stat.Mean(b, nil)) / se
	df := (va + vb) * (va + vb) / (va*va/(na-1) + vb*vb/(nb-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := math.Min(1, 2*dist.CDF(-math.Abs(t)))

	return TTestResult{
		TStatistic:       t,
		PValue:           p,
		DegreesOfFreedom: df,
		Alpha:            alpha,
		Significant:      p < alpha,
	}, nil
}
