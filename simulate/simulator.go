// Package simulate drives a converter across a voltage sweep.
// The general idea is given a converter, see the pipeline package, and a
// sweep.Range, the simulator converts every voltage of the range in order
// and keeps the per-conversion trace as an observation.
package simulate

import (
	"fmt"

	"github.com/hammal/pipelinedadc/pipeline"
	"github.com/hammal/pipelinedadc/sweep"
)

// Converter converts a single analog input. *pipeline.Model implements it.
type Converter interface {
	Convert(v float64) (pipeline.ConversionResult, error)
}

// Observation is one converted sample of a sweep.
type Observation struct {
	// Index is the position of the sample within the sweep, starting at 0.
	Index   int
	Voltage float64
	Result  pipeline.ConversionResult
}

// Simulator interface
type Simulator interface {
	// Simulate converts every voltage of the sweep. A failing conversion
	// aborts the sweep and leaves the observations made so far.
	Simulate() error
	// Observations returns the observations in sweep order.
	Observations() []Observation
	// Range returns the simulated sweep.
	Range() sweep.Range
}

// simulator type
type simulator struct {
	conv         Converter
	rng          sweep.Range
	observations []Observation
}

// New returns a simulator for conv over rng.
func New(conv Converter, rng sweep.Range) Simulator {
	return &simulator{conv: conv, rng: rng}
}

// Observations returns the array of observations
func (sim *simulator) Observations() []Observation {
	return sim.observations
}

func (sim *simulator) Range() sweep.Range {
	return sim.rng
}

func (sim *simulator) Simulate() error {
	if err := sim.rng.Validate(); err != nil {
		return err
	}
	voltages := sim.rng.Voltages()
	sim.observations = make([]Observation, 0, len(voltages))
	for index, v := range voltages {
		res, err := sim.conv.Convert(v)
		if err != nil {
			return fmt.Errorf("sample %d at %g V: %w", index, v, err)
		}
		sim.observations = append(sim.observations, Observation{Index: index, Voltage: v, Result: res})
	}
	return nil
}

// Signatures returns the stage signature of every observation.
func Signatures(obs []Observation) []pipeline.Signature {
	sigs := make([]pipeline.Signature, len(obs))
	for i, o := range obs {
		sigs[i] = o.Result.Signature()
	}
	return sigs
}
