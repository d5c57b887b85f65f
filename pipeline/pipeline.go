// Package pipeline simulates a pipelined analog-to-digital converter built
// from stage.NumStages 1.5-bit stages.
//
// Each stage quantizes its input into a signed code, subtracts it and hands
// the amplified residue on to the next stage. The signed codes carry one bit
// of redundancy between neighbouring stages which is removed when they are
// recombined into the composite output code, so comparator offsets smaller
// than the redundancy margin do not show up in the output.
package pipeline

import (
	"fmt"

	"github.com/hammal/pipelinedadc/stage"
	"github.com/rs/zerolog"
)

// Model is a pipelined ADC. It owns the stage configuration and the shared
// code table; conversion results are returned by value and never stored, so
// a Model may be read by several sweeps as long as nobody changes its stages.
type Model struct {
	stages [stage.NumStages]stage.Config
	table  stage.CodeTable
	log    zerolog.Logger
}

// Option configures a Model.
type Option func(*Model) error

// WithCodeTable replaces the default code table.
func WithCodeTable(t stage.CodeTable) Option {
	return func(m *Model) error {
		if err := t.Validate(); err != nil {
			return err
		}
		m.table = t
		return nil
	}
}

// WithStages sets all stage configurations at once.
func WithStages(stages [stage.NumStages]stage.Config) Option {
	return func(m *Model) error {
		m.stages = stages
		return nil
	}
}

// WithLogger traces every conversion at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) error {
		m.log = l
		return nil
	}
}

// NewModel returns an ideal converter using the default code table.
func NewModel(opts ...Option) (*Model, error) {
	m := &Model{
		stages: stage.IdealStages(),
		table:  stage.DefaultCodeTable(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CodeTable returns the code table shared by all stages.
func (m *Model) CodeTable() stage.CodeTable {
	return m.table
}

// Stages returns a copy of the stage configurations.
func (m *Model) Stages() [stage.NumStages]stage.Config {
	return m.stages
}

// Stage returns the configuration of stage i.
func (m *Model) Stage(i int) (stage.Config, error) {
	if err := stage.CheckIndex(i); err != nil {
		return stage.Config{}, err
	}
	return m.stages[i], nil
}

// SetStage replaces the configuration of stage i.
func (m *Model) SetStage(i int, c stage.Config) error {
	if err := stage.CheckIndex(i); err != nil {
		return err
	}
	m.stages[i] = c
	return nil
}

// SetGainError sets the residue gain error of stage i.
func (m *Model) SetGainError(i int, gain float64) error {
	if err := stage.CheckIndex(i); err != nil {
		return err
	}
	m.stages[i].GainError = gain
	return nil
}

// SetOffsetError sets the comparator offset error of stage i.
func (m *Model) SetOffsetError(i int, offset float64) error {
	if err := stage.CheckIndex(i); err != nil {
		return err
	}
	m.stages[i].OffsetError = offset
	return nil
}

// Reset removes all injected errors.
func (m *Model) Reset() {
	m.stages = stage.IdealStages()
}

// Convert converts the analog input v. Stage 0 sees v, every later stage sees
// the previous stage's residue. The per-stage trace and the composite code are
// returned in the ConversionResult.
//
// The only failure is a stage selecting a code outside {-1, 0, +1}, which
// means the code table is corrupt; it is reported as a *stage.Error wrapping
// stage.ErrInvalidState.
func (m *Model) Convert(v float64) (ConversionResult, error) {
	var res ConversionResult
	x := v
	for s := 0; s < stage.NumStages; s++ {
		res.Inputs[s] = x
		code, index, out, err := m.stages[s].Convert(m.table, x)
		if err != nil {
			return ConversionResult{}, &stage.Error{Stage: s, Input: x, Code: code, Wrapped: err}
		}
		res.Codes[s] = code
		res.Indices[s] = index
		res.Residues[s] = out

		m.log.Debug().
			Int("stage", s).
			Float64("input", x).
			Int("code", int(code)).
			Float64("residue", out).
			Msg("stage")
		x = out
	}
	res.Code = CompositeCode(res.Codes)

	m.log.Debug().
		Float64("input", v).
		Int("code", res.Code).
		Stringer("signature", res.Signature()).
		Msg("conversion")
	return res, nil
}

// CompositeCode recombines the signed stage codes into one output code.
// Stage s, counted from the MSB, is weighted with 2^(N-1-s). The weighted sum
// lies in [-(2^N-1), 2^N-1]; adding 2^N-1 and halving maps it onto
// [0, 2^N-1].
func CompositeCode(codes [stage.NumStages]stage.Code) int {
	sum := 0
	for s, c := range codes {
		sum += int(c) << (stage.NumStages - 1 - s)
	}
	return (sum + MaxCode) >> 1
}

// MaxCode is the largest composite code, 2^N - 1.
const MaxCode = 1<<stage.NumStages - 1

func (m *Model) String() string {
	return fmt.Sprintf("pipelined ADC (%d stages, thresholds %g/%g)",
		stage.NumStages, m.table[0].Threshold, m.table[1].Threshold)
}
