// Package telemetry implements the evolution recorder (spec.md §4.F): the
// time-binned residence counters per rare earth, and the statistics used
// to turn a finished series into the scalar that becomes one PSF pixel.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/stedkmc/sitetable"
)

// Recorder accumulates ground/excited residence counts for every rare
// earth in a run and flushes them into time-binned series on a cadence
// the step kernel drives. Residence counters live on the site table
// itself (sitetable.Table.IncGround/IncExcited); Recorder only reads and
// resets them (invariant 5: counters are zeroed whenever flushed).
type Recorder struct {
	reLo, nRE int

	ticks   []uint64
	ground  [][]uint64 // ground[j] is RE j's ground-residence series
	excited [][]uint64 // excited[j] is RE j's excited-residence series
}

// NewRecorder builds a recorder for the nRE rare earths occupying table
// indices [reLo, reLo+nRE).
func NewRecorder(reLo, nRE int) *Recorder {
	r := &Recorder{
		reLo:    reLo,
		nRE:     nRE,
		ground:  make([][]uint64, nRE),
		excited: make([][]uint64, nRE),
	}
	return r
}

// Flush appends (tick, current n_ground, current n_excited) for every RE
// and zeroes their counters. t[] is strictly monotonic because Flush is
// only ever called with an increasing tick by the step kernel.
func (r *Recorder) Flush(tick uint64, t *sitetable.Table) {
	r.ticks = append(r.ticks, tick)
	for j := 0; j < r.nRE; j++ {
		idx := r.reLo + j
		g, e := t.ResidenceCounts(idx)
		r.ground[j] = append(r.ground[j], g)
		r.excited[j] = append(r.excited[j], e)
		t.ResetResidenceCounts(idx)
	}
}

// Series returns the finalized (t, ground, excited) series for RE j.
func (r *Recorder) Series(j int) (ticks, ground, excited []uint64) {
	return r.ticks, r.ground[j], r.excited[j]
}

// NumRE returns the number of rare earths this recorder tracks.
func (r *Recorder) NumRE() int { return r.nRE }

// LogValue implements slog.LogValuer, reporting the most recent window for
// the primary (first) RE — mirroring the teacher's WindowStats.LogValue,
// scoped down to what this engine actually tracks.
func (r *Recorder) LogValue() slog.Value {
	if len(r.ticks) == 0 || r.nRE == 0 {
		return slog.GroupValue(slog.Int("windows", 0))
	}
	last := len(r.ticks) - 1
	return slog.GroupValue(
		slog.Int("windows", len(r.ticks)),
		slog.Uint64("tick", r.ticks[last]),
		slog.Uint64("primary_ground", r.ground[0][last]),
		slog.Uint64("primary_excited", r.excited[0][last]),
	)
}
