package pipeline

import (
	"strconv"
	"strings"

	"github.com/hammal/pipelinedadc/stage"
)

// ConversionResult is the trace of a single conversion.
type ConversionResult struct {
	// Inputs holds the analog input seen by every stage.
	Inputs [stage.NumStages]float64
	// Residues holds the analog output of every stage after gain error.
	Residues [stage.NumStages]float64
	// Codes holds the signed code selected by every stage.
	Codes [stage.NumStages]stage.Code
	// Indices holds the code table index selected by every stage.
	Indices [stage.NumStages]int
	// Code is the composite output code.
	Code int
}

// Signature returns the per-stage table indices of the conversion.
func (r ConversionResult) Signature() Signature {
	return Signature(r.Indices)
}

// Signature identifies the decision path taken through the pipeline. Two
// conversions with equal signatures made the same decision in every stage.
// Signatures are comparable with ==.
type Signature [stage.NumStages]int

// String renders the table indices as a digit string, MSB stage first.
func (s Signature) String() string {
	var b strings.Builder
	b.Grow(stage.NumStages)
	for _, idx := range s {
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}
