package main

import (
	"fmt"

	"github.com/hammal/pipelinedadc/config"
	"github.com/hammal/pipelinedadc/sweep"
)

// flagValues are the command line overrides applied on top of a scenario.
type flagValues struct {
	ConfigPath   string
	Range        string
	Offsets      []string
	Gains        []string
	WorstCase    string
	CSV          string
	Plot         string
	HTML         string
	DivergedOnly bool
}

func currentFlags() flagValues {
	return flagValues{
		ConfigPath:   configPath,
		Range:        rangeSpec,
		Offsets:      offsets,
		Gains:        gains,
		WorstCase:    worstCase,
		CSV:          csvPath,
		Plot:         plotPath,
		HTML:         htmlPath,
		DivergedOnly: divergedOnly,
	}
}

// buildScenario loads the scenario file, if any, and applies the flag
// overrides. Flags win over the file.
func buildScenario(f flagValues) (*config.Scenario, error) {
	sc := config.Default()
	if f.ConfigPath != "" {
		loaded, err := config.Load(f.ConfigPath)
		if err != nil {
			return nil, err
		}
		sc = loaded
	}

	if f.Range != "" {
		r, err := sweep.Parse(f.Range)
		if err != nil {
			return nil, err
		}
		sc.Sweep = &r
	}
	if f.WorstCase != "" {
		sc.WorstCase = f.WorstCase
	}
	for _, s := range f.Offsets {
		i, v, err := config.ParseAssignment(s)
		if err != nil {
			return nil, fmt.Errorf("--offset: %w", err)
		}
		sc.InjectOffset(i, v)
	}
	for _, s := range f.Gains {
		i, v, err := config.ParseAssignment(s)
		if err != nil {
			return nil, fmt.Errorf("--gain: %w", err)
		}
		sc.InjectGain(i, v)
	}

	if f.CSV != "" {
		sc.Output.CSV = f.CSV
	}
	if f.Plot != "" {
		sc.Output.Plot = f.Plot
	}
	if f.HTML != "" {
		sc.Output.HTML = f.HTML
	}
	if f.DivergedOnly {
		sc.Output.DivergedOnly = true
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}
