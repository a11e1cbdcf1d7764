package predictor

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Counter states of a 2-bit saturating counter.
const (
	StronglyNotTaken uint8 = 0
	WeaklyNotTaken   uint8 = 1
	WeaklyTaken      uint8 = 2
	StronglyTaken    uint8 = 3
)

const (
	countersPerRow = 4
	counterBits    = 2
	counterMask    = 0b11

	// weaklyTakenRow has every 2-bit field set to WeaklyTaken.
	weaklyTakenRow = 0b10101010
)

// CounterTable is a dense array of 2-bit saturating counters. Four counters
// are packed into each byte; counter i lives in row i/4 at bit offset
// 2*(i%4), so sub-position 0 is the least significant field.
type CounterTable struct {
	rows []uint8
}

// NewCounterTable allocates a table with the given number of rows. Every
// counter starts as WeaklyTaken.
func NewCounterTable(rows uint64) *CounterTable {
	t := &CounterTable{
		rows: make([]uint8, rows),
	}
	t.Reset()

	return t
}

// Len returns the number of counters in the table.
func (t *CounterTable) Len() uint64 {
	return uint64(len(t.rows)) * countersPerRow
}

// Rows returns the number of packed storage rows.
func (t *CounterTable) Rows() uint64 {
	return uint64(len(t.rows))
}

// Get returns the counter at index.
func (t *CounterTable) Get(index uint64) (uint8, error) {
	if index >= t.Len() {
		return 0, fmt.Errorf("%w: counter %d, table size %d",
			ErrOutOfRange, index, t.Len())
	}

	row, shift := locate(index)

	return (t.rows[row] >> shift) & counterMask, nil
}

// Set stores value into the counter at index. Only the 2-bit field of that
// counter is modified.
func (t *CounterTable) Set(index uint64, value uint8) error {
	if index >= t.Len() {
		return fmt.Errorf("%w: counter %d, table size %d",
			ErrOutOfRange, index, t.Len())
	}

	if value > StronglyTaken {
		return fmt.Errorf("%w: %d does not fit in %d bits",
			ErrInvalidValue, value, counterBits)
	}

	row, shift := locate(index)
	t.rows[row] &^= counterMask << shift
	t.rows[row] |= (value & counterMask) << shift

	return nil
}

// Reset sets every counter back to WeaklyTaken.
func (t *CounterTable) Reset() {
	for i := range t.rows {
		t.rows[i] = weaklyTakenRow
	}
}

// Snapshot returns a copy of the packed rows.
func (t *CounterTable) Snapshot() []uint8 {
	return slices.Clone(t.rows)
}

func locate(index uint64) (row uint64, shift uint) {
	return index / countersPerRow, uint(index%countersPerRow) * counterBits
}
