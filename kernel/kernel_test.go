package kernel

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/stedkmc/probability"
	"github.com/pthm-cable/stedkmc/sitekind"
	"github.com/pthm-cable/stedkmc/sitetable"
	"github.com/pthm-cable/stedkmc/telemetry"
)

func buildRun(t *testing.T, nET, nRE int) (*sitetable.Table, *telemetry.Recorder, *telemetry.Heatmap) {
	t.Helper()

	etX := make([]float64, nET)
	etY := make([]float64, nET)
	for i := range etX {
		etX[i] = float64(i) * 1e-9
	}
	reX := make([]float64, nRE)
	reY := make([]float64, nRE)
	for i := range reX {
		reX[i] = float64(i) * 2e-9
	}

	tbl := sitetable.New(etX, etY, reX, reY)

	pumpI := make([]float64, tbl.Len())
	stedI := make([]float64, tbl.Len())
	for i := range pumpI {
		pumpI[i] = 0.5
		stedI[i] = 0.3
	}

	cs := probability.CrossSections{Decay: 0.2, Pump: 1.0, Ionize: 0.8, Repump: 0.4, Deplete: 0.6}
	if err := probability.Build(tbl, pumpI, stedI, cs); err != nil {
		t.Fatalf("probability.Build() error = %v", err)
	}

	reLo, reHi := tbl.REIndices()
	rec := telemetry.NewRecorder(reLo, reHi-reLo)
	hm := telemetry.NewHeatmap(tbl.Len())
	return tbl, rec, hm
}

func TestTickPreservesREStateInvariant(t *testing.T) {
	tbl, rec, hm := buildRun(t, 50, 4)
	rng := rand.New(rand.NewSource(7))
	k := New(tbl, rng, 3e-9, 100, rec, hm)

	reLo, reHi := tbl.REIndices()

	for tick := uint64(0); tick < 2000; tick++ {
		k.Tick(tick)

		for i := reLo; i < reHi; i++ {
			state := sitekind.State(tbl.REState(i))
			wantPopulated := state != sitekind.Ionized
			if tbl.Populated(i) != wantPopulated {
				t.Fatalf("tick %d site %d: populated=%v state=%v, invariant broken",
					tick, i, tbl.Populated(i), state)
			}
		}
	}
}

func TestSampleSizeFormula(t *testing.T) {
	tbl, rec, hm := buildRun(t, 199, 1)
	rng := rand.New(rand.NewSource(1))
	k := New(tbl, rng, 1e-9, 10, rec, hm)

	// ceil(0.01*199)+1 = ceil(1.99)+1 = 2+1 = 3
	if got := k.sampleSize(); got != 3 {
		t.Fatalf("sampleSize() = %d, want 3", got)
	}
}

func TestCandidatesIncludeAllRE(t *testing.T) {
	tbl, rec, hm := buildRun(t, 20, 5)
	rng := rand.New(rand.NewSource(1))
	k := New(tbl, rng, 1e-9, 10, rec, hm)

	reLo, reHi := tbl.REIndices()
	candidates := k.buildCandidates()

	present := map[int]bool{}
	for _, c := range candidates {
		present[c] = true
	}
	for i := reLo; i < reHi; i++ {
		if !present[i] {
			t.Fatalf("RE site %d missing from candidate set", i)
		}
	}
}
