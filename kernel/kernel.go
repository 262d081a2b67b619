// Package kernel implements the step kernel: one tick of the simulation.
// Each tick picks a candidate subset of sites, draws one uniform sample per
// candidate, applies the small ET/RE state machine, and inlines
// recombination into the triggering ionization.
package kernel

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/stedkmc/recombine"
	"github.com/pthm-cable/stedkmc/sitekind"
	"github.com/pthm-cable/stedkmc/sitetable"
	"github.com/pthm-cable/stedkmc/telemetry"
)

// Kernel owns the per-tick reusable buffers and collaborators a run needs:
// the site table it mutates, the RNG it draws from, the travel radius
// recombination is bounded by, and the recorder/heatmap observation-phase
// sinks. One Kernel belongs to exactly one run.
type Kernel struct {
	table        *sitetable.Table
	rng          *rand.Rand
	travelRadius float64
	flushEvery   uint64

	recorder *telemetry.Recorder
	heatmap  *telemetry.Heatmap

	etPool     []int // reused across ticks, partially reshuffled each call
	candidates []int // reused across ticks: sampled ETs + all REs
	snapBuf    []float64

	electronLostCount int
}

// New builds a kernel for table t. flushEvery is the recorder flush cadence
// in ticks (⌈N/20⌉, computed by the run driver from the configured tick
// count).
func New(t *sitetable.Table, rng *rand.Rand, travelRadius float64, flushEvery uint64, recorder *telemetry.Recorder, heatmap *telemetry.Heatmap) *Kernel {
	etLo, etHi := t.ETIndices()
	pool := make([]int, etHi-etLo)
	for i := range pool {
		pool[i] = etLo + i
	}

	return &Kernel{
		table:        t,
		rng:          rng,
		travelRadius: travelRadius,
		flushEvery:   flushEvery,
		recorder:     recorder,
		heatmap:      heatmap,
		etPool:       pool,
	}
}

// ElectronLostCount returns the number of ionizations since construction
// for which no reachable vacant site existed.
func (k *Kernel) ElectronLostCount() int { return k.electronLostCount }

// sampleSize is ⌈0.01·N_ET + 1⌉: a tiny fraction of the (plentiful, cold)
// ET pool is touched per tick, while every (few, hot) RE gets one attempt.
func (k *Kernel) sampleSize() int {
	return int(math.Ceil(0.01*float64(len(k.etPool)))) + 1
}

// buildCandidates samples ET indices without replacement via a partial
// Fisher-Yates shuffle of the reused pool, concatenates all RE indices,
// then shuffles the combined list so the two classes interleave uniformly
// at random per tick (spec.md §5: never process them as two sequential
// batches, or RE transitions would be biased by the state immediately
// after ET updates).
func (k *Kernel) buildCandidates() []int {
	size := k.sampleSize()
	if size > len(k.etPool) {
		size = len(k.etPool)
	}

	for i := 0; i < size; i++ {
		j := i + k.rng.Intn(len(k.etPool)-i)
		k.etPool[i], k.etPool[j] = k.etPool[j], k.etPool[i]
	}

	reLo, reHi := k.table.REIndices()
	total := size + (reHi - reLo)
	if cap(k.candidates) < total {
		k.candidates = make([]int, 0, total)
	}
	k.candidates = k.candidates[:0]
	k.candidates = append(k.candidates, k.etPool[:size]...)
	for i := reLo; i < reHi; i++ {
		k.candidates = append(k.candidates, i)
	}

	k.rng.Shuffle(len(k.candidates), func(i, j int) {
		k.candidates[i], k.candidates[j] = k.candidates[j], k.candidates[i]
	})
	return k.candidates
}

// Tick advances the simulation by one step: candidate selection, per-index
// draw and transition, and the three observation-phase cadences.
func (k *Kernel) Tick(tick uint64) {
	for _, i := range k.buildCandidates() {
		u := k.rng.Float64()
		if k.table.IsRE(i) {
			k.updateRE(i, u)
		} else {
			k.updateET(i, u)
		}
	}

	k.observe(tick)
}

func (k *Kernel) updateET(i int, u float64) {
	if u <= k.table.ETIonizeThreshold(i) && k.table.Populated(i) {
		k.ionize(i)
	}
}

func (k *Kernel) updateRE(i int, u float64) {
	pDecay, pIonize, pExcite, pRepump, pDeplete := k.table.REThresholds(i)
	state := sitekind.State(k.table.REState(i))

	switch {
	case u <= pDecay:
		if state == sitekind.Excited {
			k.table.SetREState(i, uint8(sitekind.Ground))
		}
	case u <= pIonize:
		if k.table.Populated(i) && state == sitekind.Excited {
			k.table.SetPopulated(i, false)
			k.table.SetREState(i, uint8(sitekind.Ionized))
			k.ionize(i)
		}
	case u <= pExcite:
		if state == sitekind.Ground {
			k.table.SetREState(i, uint8(sitekind.Excited))
		}
	case u <= pRepump:
		if state == sitekind.Ionized {
			k.table.SetREState(i, uint8(sitekind.Ground))
			k.table.SetPopulated(i, true)
		}
	case u <= pDeplete:
		if state == sitekind.Excited {
			k.table.SetREState(i, uint8(sitekind.Ground))
		}
	}
}

// ionize marks site i unpopulated (ET path does this directly; the RE path
// already has by the time it calls ionize) and invokes the recombination
// resolver at the site's position.
func (k *Kernel) ionize(i int) {
	if !k.table.IsRE(i) {
		k.table.SetPopulated(i, false)
	}
	x, y := k.table.Position(i)
	if !recombine.Resolve(k.table, i, x, y, k.travelRadius, k.rng) {
		k.electronLostCount++
	}
}

// observe runs the three observation-phase cadences from spec.md §4.D
// step 3.
func (k *Kernel) observe(tick uint64) {
	reLo, reHi := k.table.REIndices()
	for i := reLo; i < reHi; i++ {
		switch sitekind.State(k.table.REState(i)) {
		case sitekind.Ground:
			k.table.IncGround(i)
		case sitekind.Excited:
			k.table.IncExcited(i)
		}
	}

	if k.flushEvery > 0 && tick%k.flushEvery == 0 {
		k.recorder.Flush(tick, k.table)
	}

	if tick%2 == 0 {
		k.snapBuf = k.table.PopulatedSnapshot(k.snapBuf)
		k.heatmap.Add(k.snapBuf)
	}
}
