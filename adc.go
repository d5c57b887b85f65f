// Package adc runs linearity experiments on a pipelined ADC.
//
// An experiment follows the usual bench procedure: the decision paths of an
// error free converter are recorded over the sweep, the configured stage
// errors are injected, and the faulty converter is swept again and scored
// against the ideal straight line and the recorded decision paths.
package adc

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hammal/pipelinedadc/linearity"
	"github.com/hammal/pipelinedadc/pipeline"
	"github.com/hammal/pipelinedadc/report"
	"github.com/rs/zerolog"
)

// ADC is the overall interface for running an experiment.
type ADC interface {
	// Run captures the reference sweep, injects the errors and evaluates
	// the faulty converter.
	Run() (*Outcome, error)
	// Convert converts a single voltage with and without the injected
	// errors.
	Convert(v float64) (faulty, ideal pipeline.ConversionResult, err error)
}

// Outcome is the result of one experiment.
type Outcome struct {
	RunID     uuid.UUID
	System    System
	Reference []pipeline.Signature
	Result    *linearity.Result
}

// Header returns the report header of the outcome.
func (o *Outcome) Header() report.Header {
	return report.Header{RunID: o.RunID, Name: o.System.Name, Stages: o.System.Stages}
}

// Experiment is a linearity experiment on one System.
type Experiment struct {
	sys   System
	eval  *linearity.Evaluator
	log   zerolog.Logger
	trace bool
}

// Option configures an experiment.
type Option func(*Experiment)

// WithWorstCase selects how worst DNL/INL are accumulated.
func WithWorstCase(w linearity.WorstCase) Option {
	return func(e *Experiment) {
		e.eval = linearity.New(linearity.WithWorstCase(w), linearity.WithLogger(e.log))
	}
}

// WithLogger sets the experiment logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Experiment) {
		e.log = l
		e.eval = linearity.New(linearity.WithWorstCase(e.eval.WorstCase()), linearity.WithLogger(l))
	}
}

// WithTrace logs every stage of every conversion at debug level.
func WithTrace(trace bool) Option {
	return func(e *Experiment) {
		e.trace = trace
	}
}

// NewExperiment returns an experiment for sys.
func NewExperiment(sys System, opts ...Option) (*Experiment, error) {
	if err := sys.CodeTable.Validate(); err != nil {
		return nil, err
	}
	if err := sys.Range.Validate(); err != nil {
		return nil, err
	}
	e := &Experiment{sys: sys, eval: linearity.New(), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// model returns a converter with the system's code table, ideal if faulty
// is false.
func (e *Experiment) model(faulty bool) (*pipeline.Model, error) {
	opts := []pipeline.Option{pipeline.WithCodeTable(e.sys.CodeTable)}
	if faulty {
		opts = append(opts, pipeline.WithStages(e.sys.Stages))
	}
	if e.trace {
		opts = append(opts, pipeline.WithLogger(e.log))
	}
	return pipeline.NewModel(opts...)
}

// Run executes the experiment.
func (e *Experiment) Run() (*Outcome, error) {
	out := &Outcome{RunID: uuid.New(), System: e.sys}
	log := e.log.With().Str("run", out.RunID.String()).Logger()

	m, err := e.model(false)
	if err != nil {
		return nil, err
	}

	log.Info().Stringer("range", e.sys.Range).Msg("capturing reference sweep")
	out.Reference, err = e.eval.CaptureReference(m, e.sys.Range)
	if err != nil {
		return nil, err
	}

	for i, s := range e.sys.Stages {
		if s.IsIdeal() {
			continue
		}
		if err := m.SetStage(i, s); err != nil {
			return nil, err
		}
		log.Info().Int("stage", i).Float64("gain", s.GainError).Float64("offset", s.OffsetError).Msg("injected stage error")
	}

	out.Result, err = e.eval.Evaluate(m, e.sys.Range, out.Reference)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", out.RunID, err)
	}
	return out, nil
}

// Convert converts v on the faulty and on the ideal converter.
func (e *Experiment) Convert(v float64) (faulty, ideal pipeline.ConversionResult, err error) {
	fm, err := e.model(true)
	if err != nil {
		return faulty, ideal, err
	}
	im, err := e.model(false)
	if err != nil {
		return faulty, ideal, err
	}
	if faulty, err = fm.Convert(v); err != nil {
		return faulty, ideal, err
	}
	ideal, err = im.Convert(v)
	return faulty, ideal, err
}
