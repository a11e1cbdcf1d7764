package predictor

import "fmt"

// Gshare indexes a shared table of 2-bit saturating counters with the branch
// address XORed with the global branch history.
type Gshare struct {
	indexBits   uint
	historyBits uint
	indexMask   uint64

	// table holds 2^indexBits counters in 2^(indexBits-2) rows.
	table *CounterTable

	// history keeps the most recent outcome in bit historyBits-1.
	history uint64

	missCount  uint64
	totalCount uint64
}

// NewGshare creates a gshare predictor with the given geometry. The config is
// validated; an invalid config returns an error and no predictor.
func NewGshare(config *Config) (*Gshare, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Each row packs 4 counters, so 2 index bits select the column.
	rows, err := Pow2(config.IndexBits - 2)
	if err != nil {
		return nil, fmt.Errorf("failed to size counter table: %w", err)
	}

	return &Gshare{
		indexBits:   config.IndexBits,
		historyBits: config.HistoryBits,
		indexMask:   lowMask(config.IndexBits),
		table:       NewCounterTable(rows),
	}, nil
}

// Config returns the geometry of the predictor.
func (g *Gshare) Config() *Config {
	return &Config{
		IndexBits:   g.indexBits,
		HistoryBits: g.historyBits,
	}
}

// index hashes address with the global history.
func (g *Gshare) index(address uint64) uint64 {
	idx := address & g.indexMask

	if g.historyBits > 0 {
		h := g.history & g.indexMask
		h <<= g.indexBits - g.historyBits
		h &= g.indexMask
		idx ^= h
	}

	return idx
}

// Predict returns the direction the next Update of address would be checked
// against. It does not change any state.
func (g *Gshare) Predict(address uint64) Prediction {
	idx := g.index(address)
	counter := g.mustGet(idx)

	return Prediction{
		Taken:   counter >= WeaklyTaken,
		Index:   idx,
		Counter: counter,
	}
}

// Update trains the counter selected by address and the global history with
// outcome, then shifts outcome into the history register.
func (g *Gshare) Update(address uint64, outcome Outcome) {
	idx := g.index(address)
	counter := g.mustGet(idx)

	switch outcome {
	case NotTaken:
		if counter >= WeaklyTaken {
			g.missCount++
		}
		if counter > StronglyNotTaken {
			counter--
		}
	case Taken:
		if counter <= WeaklyNotTaken {
			g.missCount++
		}
		if counter < StronglyTaken {
			counter++
		}
	default:
		panic(fmt.Sprintf("gshare: unknown outcome %d", outcome))
	}

	if err := g.table.Set(idx, counter); err != nil {
		panic(fmt.Sprintf("gshare: %v", err))
	}

	if g.historyBits > 0 {
		g.history >>= 1
		if outcome == Taken {
			g.history |= uint64(1) << (g.historyBits - 1)
		}
	}

	g.totalCount++
}

// mustGet reads a counter whose index was derived from a masked address.
// A failure means the table was sized incorrectly.
func (g *Gshare) mustGet(idx uint64) uint8 {
	counter, err := g.table.Get(idx)
	if err != nil {
		panic(fmt.Sprintf("gshare: %v", err))
	}

	return counter
}

// MissPredictionRatio returns 100 * misses / updates, or 0 before the first
// update.
func (g *Gshare) MissPredictionRatio() float64 {
	if g.totalCount == 0 {
		return 0.0
	}

	return float64(g.missCount) * 100 / float64(g.totalCount)
}

// MissCount returns the number of mispredicted updates.
func (g *Gshare) MissCount() uint64 {
	return g.missCount
}

// TotalCount returns the number of updates.
func (g *Gshare) TotalCount() uint64 {
	return g.totalCount
}

// Stats returns the branch predictor statistics.
func (g *Gshare) Stats() Stats {
	return Stats{
		Predictions:    g.totalCount,
		Correct:        g.totalCount - g.missCount,
		Mispredictions: g.missCount,
	}
}

// History returns the global history register.
func (g *Gshare) History() uint64 {
	return g.history
}

// Counter returns the counter at a hashed table index.
func (g *Gshare) Counter(index uint64) (uint8, error) {
	return g.table.Get(index)
}

// Snapshot returns a copy of the packed counter table.
func (g *Gshare) Snapshot() []uint8 {
	return g.table.Snapshot()
}

// Reset clears all predictor state and statistics.
func (g *Gshare) Reset() {
	g.table.Reset()
	g.history = 0
	g.missCount = 0
	g.totalCount = 0
}
