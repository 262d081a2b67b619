package probability

import (
	"errors"
	"testing"

	"github.com/pthm-cable/stedkmc/sitetable"
)

func TestBuildMonotonicThresholds(t *testing.T) {
	tbl := sitetable.New(
		[]float64{0, 1}, []float64{0, 0},
		[]float64{0, 0.5, 1}, []float64{0, 0, 0},
	)

	pumpI := []float64{0.2, 0.1, 1.0, 0.5, 0.1}
	stedI := []float64{0.1, 0.3, 0.2, 0.4, 0.9}

	cs := CrossSections{Decay: 0.5, Pump: 1.0, Ionize: 0.7, Repump: 0.3, Deplete: 0.6}

	if err := Build(tbl, pumpI, stedI, cs); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	lo, hi := tbl.REIndices()
	for i := lo; i < hi; i++ {
		decay, ionize, excite, repump, deplete := tbl.REThresholds(i)
		if !(0 <= decay && decay <= ionize && ionize <= excite && excite <= repump && repump <= deplete && deplete <= 1) {
			t.Errorf("site %d thresholds not monotonic in [0,1]: %v <= %v <= %v <= %v <= %v",
				i, decay, ionize, excite, repump, deplete)
		}
		if deplete > 0.1+1e-9 {
			t.Errorf("site %d p_deplete = %v, want <= 0.1 (invariant 3)", i, deplete)
		}
	}

	etLo, etHi := tbl.ETIndices()
	for i := etLo; i < etHi; i++ {
		p := tbl.ETIonizeThreshold(i)
		if p < 0 || p > 1 {
			t.Errorf("ET site %d threshold = %v, want in [0,1]", i, p)
		}
	}
}

func TestBuildNumericDegenerate(t *testing.T) {
	tbl := sitetable.New(
		[]float64{0}, []float64{0},
		[]float64{0}, []float64{0},
	)

	pumpI := []float64{0, 0}
	stedI := []float64{0, 0}
	cs := CrossSections{} // everything zero, including decay/gamma

	err := Build(tbl, pumpI, stedI, cs)
	if !errors.Is(err, ErrNumericDegenerate) {
		t.Fatalf("Build() error = %v, want ErrNumericDegenerate", err)
	}
}

func TestBuildNoETSitesIsNotDegenerate(t *testing.T) {
	// No ET sites at all: buildET must be a no-op, never degenerate.
	tbl := sitetable.New(nil, nil, []float64{0}, []float64{0})
	pumpI := []float64{0}
	stedI := []float64{0}
	cs := CrossSections{Decay: 1.0}

	if err := Build(tbl, pumpI, stedI, cs); err != nil {
		t.Fatalf("Build() error = %v, want nil with no ET sites", err)
	}
}
