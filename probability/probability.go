// Package probability converts raw beam intensities and cross-sections
// into the normalized, cumulative per-site decision thresholds the step
// kernel draws against. It runs exactly once per run, after site
// construction and before tick 0.
package probability

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/stedkmc/sitetable"
)

// ErrNumericDegenerate is returned when every intensity is zero at every
// site of a class, which would otherwise divide by zero while normalizing
// thresholds. Not a recoverable condition; fatal to the run.
var ErrNumericDegenerate = errors.New("probability: numeric degenerate")

// CrossSections bundles the five proportionality factors between beam
// intensity and transition rate.
type CrossSections struct {
	Decay   float64 // γ, constant across RE sites
	Pump    float64 // σ_pump
	Ionize  float64 // σ_ionize
	Repump  float64 // σ_repump
	Deplete float64 // σ_sted
}

// Build writes the ET and RE threshold columns of t from per-site pump and
// STED intensities. pumpI/stedI must be parallel to t's full index range
// (ET range followed by RE range), matching sitetable.Table's layout.
func Build(t *sitetable.Table, pumpI, stedI []float64, cs CrossSections) error {
	if err := buildET(t, pumpI, stedI); err != nil {
		return err
	}
	return buildRE(t, pumpI, stedI, cs)
}

func buildET(t *sitetable.Table, pumpI, stedI []float64) error {
	lo, hi := t.ETIndices()
	n := hi - lo
	if n == 0 {
		return nil
	}

	raw := make([]float64, n)
	for i := 0; i < n; i++ {
		raw[i] = pumpI[lo+i] + stedI[lo+i]
	}

	maxRaw := floats.Max(raw)
	if maxRaw == 0 {
		return fmt.Errorf("%w: all ET intensities are zero", ErrNumericDegenerate)
	}

	for i := 0; i < n; i++ {
		t.SetETIonizeThreshold(lo+i, raw[i]/maxRaw)
	}
	return nil
}

func buildRE(t *sitetable.Table, pumpI, stedI []float64, cs CrossSections) error {
	lo, hi := t.REIndices()
	n := hi - lo
	if n == 0 {
		return nil
	}

	e := make([]float64, n)
	ni := make([]float64, n)
	r := make([]float64, n)
	d := make([]float64, n)
	p := make([]float64, n)
	tot := make([]float64, n)

	for i := 0; i < n; i++ {
		pump := pumpI[lo+i]
		sted := stedI[lo+i]

		e[i] = pump * cs.Pump
		ni[i] = (pump + sted) * cs.Ionize
		r[i] = pump * cs.Repump
		d[i] = cs.Decay
		p[i] = sted * cs.Deplete
		tot[i] = e[i] + ni[i] + r[i] + d[i] + p[i]
	}

	m := floats.Max(tot)
	if m == 0 {
		return fmt.Errorf("%w: all RE intensities and cross-sections are zero", ErrNumericDegenerate)
	}

	for i := 0; i < n; i++ {
		decay := d[i] / m
		ionize := decay + ni[i]/m
		excite := ionize + e[i]/m
		repump := excite + r[i]/m
		deplete := repump + p[i]/m

		// Open question (spec.md §9.1): this per-site ×10 rescale of the
		// summed cumulative fields is preserved verbatim from the source;
		// its physical interpretation (a baked-in tick duration?) is not
		// resolved here. It compresses the hottest RE's per-tick firing
		// probability to ≤0.1 (invariant 3), which is why it exists.
		sum5 := decay + ionize + excite + repump + deplete
		divisor := 10 * sum5
		if divisor == 0 {
			t.SetREThresholds(lo+i, 0, 0, 0, 0, 0)
			continue
		}

		t.SetREThresholds(lo+i,
			decay/divisor,
			ionize/divisor,
			excite/divisor,
			repump/divisor,
			deplete/divisor,
		)
	}
	return nil
}
