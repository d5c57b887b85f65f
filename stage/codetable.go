package stage

import (
	"fmt"
	"math"
)

// Entry is one decision region of the flash quantizer. An input belongs to
// the region if it lies below Threshold and above every previous threshold.
type Entry struct {
	Threshold float64
	Code      Code
}

// CodeTable lists the decision regions in ascending threshold order. The last
// threshold is a sentinel that accepts any remaining input.
type CodeTable [NumCodes]Entry

// DefaultCodeTable returns the standard 1.5-bit table with thresholds at
// -1/4 and +1/4.
func DefaultCodeTable() CodeTable {
	return CodeTable{
		{Threshold: -0.25, Code: CodeLow},
		{Threshold: 0.25, Code: CodeMid},
		{Threshold: math.Inf(1), Code: CodeHigh},
	}
}

// NewCodeTable builds a table from thresholds and codes and validates it.
func NewCodeTable(thresholds [NumCodes]float64, codes [NumCodes]Code) (CodeTable, error) {
	var t CodeTable
	for i := range t {
		t[i] = Entry{Threshold: thresholds[i], Code: codes[i]}
	}
	if err := t.Validate(); err != nil {
		return CodeTable{}, err
	}
	return t, nil
}

// Validate checks that thresholds are strictly increasing and that every code
// is a valid 1.5-bit code.
func (t CodeTable) Validate() error {
	for i, e := range t {
		if math.IsNaN(e.Threshold) {
			return fmt.Errorf("code table entry %d: threshold is NaN: %w", i, ErrConfiguration)
		}
		if !e.Code.Valid() {
			return fmt.Errorf("code table entry %d: code %d not in {-1,0,1}: %w", i, e.Code, ErrConfiguration)
		}
		if i > 0 && e.Threshold <= t[i-1].Threshold {
			return fmt.Errorf("code table entry %d: threshold %g not above %g: %w",
				i, e.Threshold, t[i-1].Threshold, ErrConfiguration)
		}
	}
	return nil
}

// Quantize returns the code and table index selected for input x with the
// comparator offset applied. The table is scanned in order and the first
// entry whose threshold exceeds x+offset is chosen. The comparison is strict,
// so an input sitting exactly on a threshold falls into the region above it.
// If the scan runs off the end the last entry is selected.
func (t CodeTable) Quantize(x, offset float64) (Code, int) {
	v := x + offset
	for i, e := range t {
		if v < e.Threshold {
			return e.Code, i
		}
	}
	return t[NumCodes-1].Code, NumCodes - 1
}
