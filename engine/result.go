package engine

import "github.com/pthm-cable/stedkmc/telemetry"

// RESeries is one rare earth's time-binned residence series, plus the
// summary statistics a caller commonly wants without re-deriving them.
type RESeries struct {
	Ticks   []uint64
	Ground  []uint64
	Excited []uint64

	// Stats summarizes Excited across the run (mean, P10/P50/P90), sparing
	// callers from re-deriving distribution shape from the raw series.
	Stats telemetry.SeriesStats
}

// ResultRecord is everything one run produces: an echo of its
// configuration, the full per-RE time series, the scalar PSF pixel value,
// and the cumulative population heatmap.
type ResultRecord struct {
	Config RunConfig

	Series []RESeries // Series[i] corresponds to RunConfig.REPositionsX[i]

	// ExcitedStateAverage is the mean of the second half of the primary
	// (first) RE's excited-residence series (spec.md §4.G step 6).
	ExcitedStateAverage float64

	// ElectronLostCount counts ionizations for which no vacant site lay
	// within the travel radius (spec.md §7: not an error, a modeling
	// decision; always populated, zero when no losses occurred).
	ElectronLostCount int

	// Heatmap is the cumulative population-occupancy accumulator, one
	// entry per site in table order (ET range then RE range).
	Heatmap []float64
}

// Sink is the external, thread-safe, append-only collaborator that
// receives one ResultRecord per run. The engine never touches the
// filesystem or formats anything itself; see the sink package for
// reference implementations.
type Sink interface {
	Emit(ResultRecord)
}
