package adc

import (
	"github.com/hammal/pipelinedadc/config"
	"github.com/hammal/pipelinedadc/stage"
	"github.com/hammal/pipelinedadc/sweep"
)

// System struct contains all relevant parameters of an experiment
type System struct {
	// Name of the experiment
	Name string
	// Stage errors injected after the reference sweep
	Stages [stage.NumStages]stage.Config
	// Comparator thresholds and codes shared by all stages
	CodeTable stage.CodeTable
	// Swept input range
	Range sweep.Range
}

// IdealSystem returns an error free converter swept over full scale.
func IdealSystem() System {
	return System{
		Name:      "ideal",
		Stages:    stage.IdealStages(),
		CodeTable: stage.DefaultCodeTable(),
		Range:     sweep.Default(),
	}
}

// SystemFromScenario builds the System described by a validated scenario.
func SystemFromScenario(sc *config.Scenario) (System, error) {
	if err := sc.Validate(); err != nil {
		return System{}, err
	}
	table, err := sc.CodeTable()
	if err != nil {
		return System{}, err
	}
	return System{
		Name:      sc.Name,
		Stages:    sc.Stages(),
		CodeTable: table,
		Range:     sc.Range(),
	}, nil
}
