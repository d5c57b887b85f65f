// Package stage holds the building blocks of a single 1.5-bit pipeline stage:
// the flash quantizer with its code table, the residue amplifier and the
// per-stage non-idealities that can be injected into it.
//
// A 1.5-bit stage resolves its input into one of three regions and emits a
// signed code in {-1, 0, +1}. The residue passed on to the next stage is
//
//	r = 2x - c
//
// scaled by the stage's residue gain error.
package stage

import "fmt"

const (
	// NumStages is the number of stages in the pipeline.
	NumStages = 10
	// NumCodes is the number of decision regions of a 1.5-bit stage.
	NumCodes = 3
)

// Code is the signed digital output of a single stage.
type Code int

const (
	// CodeLow is emitted when the input lies below the low threshold.
	CodeLow Code = -1
	// CodeMid is emitted between the two thresholds.
	CodeMid Code = 0
	// CodeHigh is emitted above the high threshold.
	CodeHigh Code = 1
)

// Valid reports whether c is one of the three 1.5-bit codes.
func (c Code) Valid() bool {
	return c == CodeLow || c == CodeMid || c == CodeHigh
}

// Config holds the non-idealities of one stage.
type Config struct {
	// GainError multiplies the residue. 1 is ideal.
	GainError float64 `yaml:"gain" json:"gain"`
	// OffsetError is added to the stage input before it is compared against
	// the thresholds. 0 is ideal.
	OffsetError float64 `yaml:"offset" json:"offset"`
}

// Ideal returns the configuration of an error free stage.
func Ideal() Config {
	return Config{GainError: 1, OffsetError: 0}
}

// IsIdeal reports whether no error is injected into the stage.
func (c Config) IsIdeal() bool {
	return c == Ideal()
}

func (c Config) String() string {
	return fmt.Sprintf("gain=%g offset=%g", c.GainError, c.OffsetError)
}

// IdealStages returns NumStages ideal stage configurations.
func IdealStages() [NumStages]Config {
	var stages [NumStages]Config
	for i := range stages {
		stages[i] = Ideal()
	}
	return stages
}

// CheckIndex returns an ErrConfiguration if i does not address a stage.
func CheckIndex(i int) error {
	if i < 0 || i >= NumStages {
		return fmt.Errorf("stage index %d outside [0,%d): %w", i, NumStages, ErrConfiguration)
	}
	return nil
}
