package telemetry

import "gonum.org/v1/gonum/floats"

// Heatmap is the persistent float accumulator the step kernel adds the
// population (populated/unpopulated) vector into every 2 ticks, producing
// a cumulative per-site population-occupancy map over the whole run.
type Heatmap struct {
	sum []float64
}

// NewHeatmap allocates a heatmap accumulator for n sites.
func NewHeatmap(n int) *Heatmap {
	return &Heatmap{sum: make([]float64, n)}
}

// Add accumulates vals (a 0/1-per-site populated snapshot) into the
// running sum. len(vals) must equal the heatmap's site count.
func (h *Heatmap) Add(vals []float64) {
	floats.Add(h.sum, vals)
}

// Values returns the accumulated per-site sums.
func (h *Heatmap) Values() []float64 { return h.sum }
