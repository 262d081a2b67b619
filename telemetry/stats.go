package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SeriesStats summarizes a finished residence series: mean and the
// 10th/50th/90th percentiles, the way the teacher's WindowStats summarized
// energy and diet distributions — but computed through gonum/stat instead
// of a hand-rolled percentile loop.
type SeriesStats struct {
	Mean, P10, P50, P90 float64
}

// ComputeSeriesStats aggregates a uint64 residence series into SeriesStats.
// Returns the zero value for an empty series.
func ComputeSeriesStats(series []uint64) SeriesStats {
	if len(series) == 0 {
		return SeriesStats{}
	}

	values := make([]float64, len(series))
	for i, v := range series {
		values[i] = float64(v)
	}

	mean := stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return SeriesStats{
		Mean: mean,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// MeanOfSecondHalf returns the arithmetic mean of the second half of
// series — the excited_state_average computation spec.md §4.G calls for.
// Returns 0 for an empty series.
func MeanOfSecondHalf(series []uint64) float64 {
	n := len(series)
	if n == 0 {
		return 0
	}

	half := series[n/2:]
	values := make([]float64, len(half))
	for i, v := range half {
		values[i] = float64(v)
	}
	return stat.Mean(values, nil)
}
