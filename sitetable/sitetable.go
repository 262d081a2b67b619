// Package sitetable holds the flat, columnar store of every site in a run
// — electron traps and rare earths alike — indexed by a dense integer id.
// Electron traps occupy the contiguous range [0, nET); rare earths occupy
// [nET, nET+nRE). The split is fixed at construction and never changes.
package sitetable

// Table is a struct-of-arrays site store. All slices are the same length,
// indexed by the site id. No failure modes: callers are expected to pass
// in-range ids; an out-of-range id is a programming error, not a runtime
// condition this package guards against.
type Table struct {
	x, y []float64
	kind []bool // true = RE, false = ET

	populated []bool
	reState   []uint8 // sitekind.State, stored as uint8 to keep the table dense

	// RE-only cumulative thresholds, valid only where kind[i] == RE.
	pDecay, pIonize, pExcite, pRepump, pDeplete []float64

	// ET-only threshold, valid only where kind[i] == ET.
	pIonizeET []float64

	nGround, nExcited []uint64 // RE-only residence counters

	nET, nRE int
}

// New builds a table with nET electron traps followed by nRE rare earths,
// copying their positions from etX/etY and reX/reY. Thresholds start at
// zero; the probability builder writes them once the run driver has
// evaluated the beams at these positions.
func New(etX, etY, reX, reY []float64) *Table {
	nET := len(etX)
	nRE := len(reX)
	n := nET + nRE

	t := &Table{
		x:         make([]float64, n),
		y:         make([]float64, n),
		kind:      make([]bool, n),
		populated: make([]bool, n),
		reState:   make([]uint8, n),
		pDecay:    make([]float64, n),
		pIonize:   make([]float64, n),
		pExcite:   make([]float64, n),
		pRepump:   make([]float64, n),
		pDeplete:  make([]float64, n),
		pIonizeET: make([]float64, n),
		nGround:   make([]uint64, n),
		nExcited:  make([]uint64, n),
		nET:       nET,
		nRE:       nRE,
	}

	copy(t.x[:nET], etX)
	copy(t.y[:nET], etY)
	copy(t.x[nET:], reX)
	copy(t.y[nET:], reY)

	for i := 0; i < nET; i++ {
		t.populated[i] = true // traps start full: every ET holds an electron at tick 0
	}
	for i := nET; i < n; i++ {
		t.kind[i] = true
		t.populated[i] = true // REs start in Ground, which is populated
	}

	return t
}

// Len returns the total number of sites.
func (t *Table) Len() int { return len(t.x) }

// NumET returns the number of electron traps.
func (t *Table) NumET() int { return t.nET }

// NumRE returns the number of rare earths.
func (t *Table) NumRE() int { return t.nRE }

// Positions returns read-only views of the x and y coordinate columns.
func (t *Table) Positions() (x, y []float64) { return t.x, t.y }

// Position returns the coordinates of site i.
func (t *Table) Position(i int) (x, y float64) { return t.x[i], t.y[i] }

// IsRE reports whether site i is a rare earth.
func (t *Table) IsRE(i int) bool { return t.kind[i] }

// Populated reports whether site i currently holds an electron.
func (t *Table) Populated(i int) bool { return t.populated[i] }

// SetPopulated sets whether site i currently holds an electron.
func (t *Table) SetPopulated(i int, v bool) { t.populated[i] = v }

// REState returns the internal state of RE site i. Meaningless for ET
// sites.
func (t *Table) REState(i int) uint8 { return t.reState[i] }

// SetREState sets the internal state of RE site i.
func (t *Table) SetREState(i int, s uint8) { t.reState[i] = s }

// ETIndices returns the contiguous [0, nET) range of electron-trap ids.
func (t *Table) ETIndices() (lo, hi int) { return 0, t.nET }

// REIndices returns the contiguous [nET, nET+nRE) range of rare-earth ids.
func (t *Table) REIndices() (lo, hi int) { return t.nET, t.nET + t.nRE }

// VacantIndices materializes the ids of every currently-unpopulated site.
// Called fresh on every recombination attempt (§4.E): the vacancy set
// changes tick to tick, so it is never cached across calls.
func (t *Table) VacantIndices() []int {
	out := make([]int, 0, len(t.populated)/8+1)
	for i, p := range t.populated {
		if !p {
			out = append(out, i)
		}
	}
	return out
}

// RE threshold accessors/setters, written once by the probability builder
// and read every tick by the step kernel.

func (t *Table) REThresholds(i int) (decay, ionize, excite, repump, deplete float64) {
	return t.pDecay[i], t.pIonize[i], t.pExcite[i], t.pRepump[i], t.pDeplete[i]
}

func (t *Table) SetREThresholds(i int, decay, ionize, excite, repump, deplete float64) {
	t.pDecay[i] = decay
	t.pIonize[i] = ionize
	t.pExcite[i] = excite
	t.pRepump[i] = repump
	t.pDeplete[i] = deplete
}

// ETIonizeThreshold returns the single cumulative threshold for ET site i.
func (t *Table) ETIonizeThreshold(i int) float64 { return t.pIonizeET[i] }

// SetETIonizeThreshold sets the single cumulative threshold for ET site i.
func (t *Table) SetETIonizeThreshold(i int, p float64) { t.pIonizeET[i] = p }

// IncGround increments RE site i's ground-residence counter by one.
func (t *Table) IncGround(i int) { t.nGround[i]++ }

// IncExcited increments RE site i's excited-residence counter by one.
func (t *Table) IncExcited(i int) { t.nExcited[i]++ }

// ResidenceCounts returns and does not reset RE site i's current counters.
func (t *Table) ResidenceCounts(i int) (ground, excited uint64) {
	return t.nGround[i], t.nExcited[i]
}

// ResetResidenceCounts zeroes RE site i's counters, called by the recorder
// immediately after it reads and flushes them (invariant 5).
func (t *Table) ResetResidenceCounts(i int) {
	t.nGround[i] = 0
	t.nExcited[i] = 0
}

// PopulatedSnapshot copies the current populated column, used by the step
// kernel's population-heatmap accumulator every 2 ticks.
func (t *Table) PopulatedSnapshot(dst []float64) []float64 {
	if cap(dst) < len(t.populated) {
		dst = make([]float64, len(t.populated))
	} else {
		dst = dst[:len(t.populated)]
	}
	for i, p := range t.populated {
		if p {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
	return dst
}
