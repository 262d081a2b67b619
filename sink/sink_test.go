package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/stedkmc/engine"
)

func sampleResult() engine.ResultRecord {
	return engine.ResultRecord{
		Series: []engine.RESeries{
			{
				Ticks:   []uint64{0, 10, 20},
				Ground:  []uint64{10, 8, 9},
				Excited: []uint64{0, 2, 1},
			},
		},
		ExcitedStateAverage: 0.15,
		ElectronLostCount:   2,
		Heatmap:             []float64{1, 0, 3},
	}
}

func TestChannelEmitAndReceive(t *testing.T) {
	c := NewChannel(2)
	want := sampleResult()
	c.Emit(want)
	c.Close()

	got, ok := <-c.Results()
	if !ok {
		t.Fatal("Results() channel closed before delivering the emitted record")
	}
	if got.ElectronLostCount != want.ElectronLostCount {
		t.Fatalf("ElectronLostCount = %d, want %d", got.ElectronLostCount, want.ElectronLostCount)
	}

	if _, ok := <-c.Results(); ok {
		t.Fatal("Results() channel should be closed and drained after the single emit")
	}
}

func TestNewCSVCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	if _, err := NewCSV(dir, "run"); err != nil {
		t.Fatalf("NewCSV() error = %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory %s to exist", dir)
	}
}

func TestCSVEmitWritesOneFilePerSeries(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSV(dir, "sted")
	if err != nil {
		t.Fatalf("NewCSV() error = %v", err)
	}

	s.Emit(sampleResult())
	if s.Err() != nil {
		t.Fatalf("Err() = %v, want nil", s.Err())
	}

	path := filepath.Join(dir, "sted-run0-re0.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}

	content := string(data)
	if !strings.Contains(content, "tick") || !strings.Contains(content, "n_ground") || !strings.Contains(content, "n_excited") {
		t.Fatalf("CSV header missing expected columns: %q", content)
	}
	if !strings.Contains(content, "10") {
		t.Fatalf("CSV body missing expected row data: %q", content)
	}
}

func TestCSVEmitIncrementsRunIndex(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSV(dir, "sted")
	if err != nil {
		t.Fatalf("NewCSV() error = %v", err)
	}

	s.Emit(sampleResult())
	s.Emit(sampleResult())

	for _, name := range []string{"sted-run0-re0.csv", "sted-run1-re0.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected file %s to exist: %v", name, err)
		}
	}
}
