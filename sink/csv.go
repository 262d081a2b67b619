package sink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/stedkmc/engine"
)

// csvRow is one row of a per-RE residence-series CSV file, grounded on the
// teacher's gocsv-marshaled telemetry rows (telemetry/output.go).
type csvRow struct {
	Tick    uint64 `csv:"tick"`
	Ground  uint64 `csv:"n_ground"`
	Excited uint64 `csv:"n_excited"`
}

// CSV is a Sink that writes one CSV file per rare earth per run, named
// "<prefix>-run<N>-re<i>.csv" under dir. It is the engine.Sink analogue of
// the teacher's telemetry.OutputManager, scoped down to the one series
// this engine produces.
type CSV struct {
	mu      sync.Mutex // serializes Emit and Err across concurrent runs
	dir     string
	prefix  string
	runIdx  int
	lastErr error
}

// NewCSV creates a CSV sink writing into dir, creating it if necessary.
func NewCSV(dir, prefix string) (*CSV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sink: creating output directory: %w", err)
	}
	return &CSV{dir: dir, prefix: prefix}, nil
}

// Emit writes one CSV file per RE series in r. Emit satisfies engine.Sink,
// whose contract has no error return; a write failure is recorded and
// retrievable via Err, and logged at slog.Error immediately so it is not
// silently lost.
func (c *CSV) Emit(r engine.ResultRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	runIdx := c.runIdx
	c.runIdx++

	for i, series := range r.Series {
		if err := c.writeSeries(runIdx, i, series); err != nil {
			c.lastErr = err
			slog.Error("sink: failed to write RE series", "run", runIdx, "re", i, "error", err)
		}
	}
}

func (c *CSV) writeSeries(runIdx, reIdx int, series engine.RESeries) error {
	path := filepath.Join(c.dir, fmt.Sprintf("%s-run%d-re%d.csv", c.prefix, runIdx, reIdx))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	rows := make([]csvRow, len(series.Ticks))
	for j := range series.Ticks {
		rows[j] = csvRow{Tick: series.Ticks[j], Ground: series.Ground[j], Excited: series.Excited[j]}
	}

	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Err returns the most recent write error, if any.
func (c *CSV) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
