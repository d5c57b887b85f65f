// Package sweep describes the input voltage progression used to measure a
// converter's static transfer characteristic.
//
// A Range visits Low+Step, Low+2*Step, ... up to and including High. Low
// itself is not part of the progression; it is converted separately to find
// the lowest output code.
package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hammal/pipelinedadc/stage"
)

// Default full-scale range of the converter in volts.
const (
	DefaultLow   = -1.0
	DefaultHigh  = 1.0
	DefaultSteps = 1024
)

// MaxSamples bounds the number of voltages in a sweep.
const MaxSamples = 1 << 24

// Range is a swept voltage interval with a fixed step.
type Range struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
	Step float64 `yaml:"step" json:"step"`
}

// Default returns the full-scale range [-1, 1] in 1024 steps.
func Default() Range {
	return Range{
		Low:  DefaultLow,
		High: DefaultHigh,
		Step: (DefaultHigh - DefaultLow) / DefaultSteps,
	}
}

// Validate returns an ErrConfiguration if the range cannot be swept.
func (r Range) Validate() error {
	for _, v := range []float64{r.Low, r.High, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("sweep %v: bounds and step must be finite: %w", r, stage.ErrConfiguration)
		}
	}
	if r.High <= r.Low {
		return fmt.Errorf("sweep %v: high must be above low: %w", r, stage.ErrConfiguration)
	}
	if r.Step <= 0 {
		return fmt.Errorf("sweep %v: step must be positive: %w", r, stage.ErrConfiguration)
	}
	// Written negated so an infinite or NaN quotient is rejected too.
	if !(r.Span()/r.Step <= MaxSamples) {
		return fmt.Errorf("sweep %v: more than %d samples: %w", r, MaxSamples, stage.ErrConfiguration)
	}
	if r.At(1) == r.Low {
		return fmt.Errorf("sweep %v: step below the resolution of low: %w", r, stage.ErrConfiguration)
	}
	return nil
}

// At returns the k-th voltage of the progression, k >= 1. Voltages are
// computed from Low rather than accumulated so that long sweeps do not drift.
func (r Range) At(k int) float64 {
	return r.Low + float64(k)*r.Step
}

// Count returns the number of voltages in the progression.
func (r Range) Count() int {
	if r.Validate() != nil {
		return 0
	}
	n := int(math.Floor(r.Span() / r.Step))
	// Floor of an inexact quotient can be off by one in either direction;
	// settle it against the actual voltages.
	for n > 0 && r.At(n) > r.High {
		n--
	}
	for n < MaxSamples && r.At(n+1) <= r.High {
		n++
	}
	return n
}

// Voltages returns the progression Low+Step, ..., up to High.
func (r Range) Voltages() []float64 {
	n := r.Count()
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = r.At(i + 1)
	}
	return vs
}

// Span returns High - Low.
func (r Range) Span() float64 {
	return r.High - r.Low
}

func (r Range) String() string {
	return fmt.Sprintf("%g:%g:%g", r.Low, r.High, r.Step)
}

// Parse parses a "low:high:step" string into a Range.
func Parse(s string) (Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Range{}, fmt.Errorf("invalid range format %q: expected low:high:step: %w", s, stage.ErrConfiguration)
	}

	var vals [3]float64
	for i, name := range []string{"low", "high", "step"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid %s value %q: %w", name, parts[i], err)
		}
		vals[i] = v
	}

	r := Range{Low: vals[0], High: vals[1], Step: vals[2]}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}
