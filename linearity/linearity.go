// Package linearity measures the static linearity of a converter.
//
// The transfer characteristic is sampled along a sweep.Range. The codes of
// the two range endpoints define the ideal straight line, and every sample
// is scored against it:
//
//	DNL = code - (previous code + 1)
//	INL = code - ideal code
//
// both in LSB. A reference sweep of stage signatures, typically captured from
// an error free converter, shows which samples took a different decision
// path once errors are injected.
package linearity

import (
	"fmt"

	"github.com/hammal/pipelinedadc/pipeline"
	"github.com/hammal/pipelinedadc/simulate"
	"github.com/hammal/pipelinedadc/stage"
	"github.com/hammal/pipelinedadc/sweep"
	"github.com/rs/zerolog"
)

// WorstCase selects how the worst DNL and INL are accumulated.
type WorstCase int

const (
	// WorstPositive keeps the largest positive excursion, starting from 0.
	// Negative excursions never raise the worst value, so it is never
	// negative.
	WorstPositive WorstCase = iota
	// WorstAbsolute keeps the largest magnitude in either direction.
	WorstAbsolute
)

func (w WorstCase) String() string {
	switch w {
	case WorstPositive:
		return "positive"
	case WorstAbsolute:
		return "absolute"
	}
	return fmt.Sprintf("WorstCase(%d)", int(w))
}

// ParseWorstCase parses "positive" or "absolute". The empty string selects
// WorstPositive.
func ParseWorstCase(s string) (WorstCase, error) {
	switch s {
	case "", "positive":
		return WorstPositive, nil
	case "absolute", "abs":
		return WorstAbsolute, nil
	}
	return 0, fmt.Errorf("unknown worst case mode %q: %w", s, stage.ErrConfiguration)
}

// update folds x into the running worst value w.
func (w WorstCase) update(worst, x float64) float64 {
	if w == WorstAbsolute && x < 0 {
		x = -x
	}
	if x > worst {
		return x
	}
	return worst
}

// Evaluator sweeps converters and scores their linearity. It keeps no state
// between calls.
type Evaluator struct {
	worst WorstCase
	log   zerolog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithWorstCase selects the worst case accumulation. The default is
// WorstPositive.
func WithWorstCase(w WorstCase) Option {
	return func(e *Evaluator) {
		e.worst = w
	}
}

// WithLogger sets the logger used for per-sweep progress.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Evaluator) {
		e.log = l
	}
}

// New returns an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{worst: WorstPositive, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WorstCase returns the configured accumulation mode.
func (e *Evaluator) WorstCase() WorstCase {
	return e.worst
}

// CaptureReference sweeps conv over rng and returns the stage signature of
// every sample. It is meant to be run once on an error free converter; the
// result is passed to Evaluate after errors have been injected.
func (e *Evaluator) CaptureReference(conv simulate.Converter, rng sweep.Range) ([]pipeline.Signature, error) {
	sim := simulate.New(conv, rng)
	if err := sim.Simulate(); err != nil {
		return nil, fmt.Errorf("capture reference: %w", err)
	}
	sigs := simulate.Signatures(sim.Observations())
	e.log.Debug().Stringer("range", rng).Int("samples", len(sigs)).Msg("captured reference sweep")
	return sigs, nil
}

// Evaluate scores conv over rng. The endpoint codes are converted first and
// define the ideal line; the sweep then follows the same progression as
// CaptureReference so that sample i lines up with reference[i]. A nil
// reference skips the signature comparison.
func (e *Evaluator) Evaluate(conv simulate.Converter, rng sweep.Range, reference []pipeline.Signature) (*Result, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if reference != nil && len(reference) < rng.Count() {
		return nil, fmt.Errorf("reference has %d samples, sweep %v has %d: %w",
			len(reference), rng, rng.Count(), stage.ErrConfiguration)
	}

	lo, err := conv.Convert(rng.Low)
	if err != nil {
		return nil, fmt.Errorf("lowest code at %g V: %w", rng.Low, err)
	}
	hi, err := conv.Convert(rng.High)
	if err != nil {
		return nil, fmt.Errorf("highest code at %g V: %w", rng.High, err)
	}

	res := &Result{
		Range:        rng,
		WorstCase:    e.worst,
		LowestCode:   lo.Code,
		HighestCode:  hi.Code,
		CodesPerVolt: float64(hi.Code-lo.Code+1) / rng.Span(),
	}
	res.VoltsPerCode = 1 / res.CodesPerVolt

	sim := simulate.New(conv, rng)
	if err := sim.Simulate(); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	obs := sim.Observations()
	res.Samples = make([]Sample, len(obs))
	previous := -1
	for i, o := range obs {
		s := Sample{
			Voltage:    o.Voltage,
			ActualCode: o.Result.Code,
			IdealCode:  float64(res.LowestCode) + (o.Voltage-rng.Low)/res.VoltsPerCode - 1,
			Signature:  o.Result.Signature(),
		}
		s.DNL = float64(s.ActualCode - (previous + 1))
		s.INL = float64(s.ActualCode) - s.IdealCode
		if reference != nil {
			s.Reference = reference[i]
			if s.Signature != s.Reference {
				s.Diverged = true
				res.Diverged++
			}
		}
		previous = s.ActualCode

		res.WorstDNL = e.worst.update(res.WorstDNL, s.DNL)
		res.WorstINL = e.worst.update(res.WorstINL, s.INL)
		res.Samples[i] = s
	}
	res.Summary = summarize(res)

	e.log.Info().
		Stringer("range", rng).
		Int("lowest_code", res.LowestCode).
		Int("highest_code", res.HighestCode).
		Float64("worst_dnl", res.WorstDNL).
		Float64("worst_inl", res.WorstINL).
		Int("diverged", res.Diverged).
		Msg("evaluated linearity")
	return res, nil
}
