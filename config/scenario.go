// Package config loads simulation scenarios: which sweep to run, which errors
// to inject into which stage and where to write the results.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hammal/pipelinedadc/gonumExtensions"
	"github.com/hammal/pipelinedadc/linearity"
	"github.com/hammal/pipelinedadc/stage"
	"github.com/hammal/pipelinedadc/sweep"
	"gopkg.in/yaml.v3"
)

// maxFileSize bounds scenario files.
const maxFileSize = 1 * 1024 * 1024

var validate = validator.New()

// Scenario describes one linearity experiment. Omitted fields fall back to
// the ideal converter and the default full-scale sweep.
type Scenario struct {
	Name string `yaml:"name,omitempty"`

	// Sweep overrides the default [-1, 1] range in 1024 steps.
	Sweep *sweep.Range `yaml:"sweep,omitempty"`

	// WorstCase is "positive" (default) or "absolute".
	WorstCase string `yaml:"worst_case,omitempty" validate:"omitempty,oneof=positive absolute abs"`

	// Thresholds overrides the low and high comparator thresholds.
	Thresholds *Thresholds `yaml:"thresholds,omitempty"`

	// Errors lists the non-idealities injected after the reference sweep.
	Errors []Injection `yaml:"errors,omitempty" validate:"dive"`

	Output Output `yaml:"output,omitempty"`
}

// Thresholds are the two finite comparator thresholds of every stage.
type Thresholds struct {
	Low  float64 `yaml:"low" validate:"ltfield=High"`
	High float64 `yaml:"high"`
}

// Injection sets the errors of one stage. At least one of Gain and Offset
// must be given; a nil field leaves the stage's current value untouched.
type Injection struct {
	Stage  int      `yaml:"stage" validate:"gte=0,max=9"`
	Gain   *float64 `yaml:"gain,omitempty" validate:"required_without=Offset"`
	Offset *float64 `yaml:"offset,omitempty" validate:"required_without=Gain"`
}

// Output selects the report artefacts.
type Output struct {
	CSV          string `yaml:"csv,omitempty"`
	Plot         string `yaml:"plot,omitempty" validate:"omitempty,endswith=.png|endswith=.svg|endswith=.pdf"`
	HTML         string `yaml:"html,omitempty" validate:"omitempty,endswith=.html"`
	DivergedOnly bool   `yaml:"diverged_only,omitempty"`
}

// Default returns the scenario of an ideal converter swept over full scale.
func Default() *Scenario {
	r := sweep.Default()
	return &Scenario{Name: "ideal", Sweep: &r, WorstCase: linearity.WorstPositive.String()}
}

// Load reads and validates a YAML scenario file.
func Load(path string) (*Scenario, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("scenario file must have .yaml or .yml extension, got %q: %w", ext, stage.ErrConfiguration)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scenario file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("scenario file too large: %d bytes (max %d): %w", fileInfo.Size(), maxFileSize, stage.ErrConfiguration)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %v: %w", err, stage.ErrConfiguration)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks the scenario before anything is simulated.
func (sc *Scenario) Validate() error {
	if err := validate.Struct(sc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid scenario fields %s: %w", strings.Join(fields, ", "), stage.ErrConfiguration)
		}
		return fmt.Errorf("invalid scenario: %v: %w", err, stage.ErrConfiguration)
	}

	if err := sc.Range().Validate(); err != nil {
		return err
	}

	if _, err := sc.CodeTable(); err != nil {
		return err
	}

	gain, offset := gonumExtensions.StageVectors(sc.Stages())
	if i := gonumExtensions.NANORINF(gain); i >= 0 {
		return fmt.Errorf("stage %d: gain error must be finite: %w", i, stage.ErrConfiguration)
	}
	if i := gonumExtensions.NANORINF(offset); i >= 0 {
		return fmt.Errorf("stage %d: offset error must be finite: %w", i, stage.ErrConfiguration)
	}
	return nil
}

// Range returns the sweep range.
func (sc *Scenario) Range() sweep.Range {
	if sc.Sweep == nil {
		return sweep.Default()
	}
	return *sc.Sweep
}

// Worst returns the worst case accumulation mode.
func (sc *Scenario) Worst() (linearity.WorstCase, error) {
	return linearity.ParseWorstCase(sc.WorstCase)
}

// CodeTable returns the stage code table.
func (sc *Scenario) CodeTable() (stage.CodeTable, error) {
	t := stage.DefaultCodeTable()
	if sc.Thresholds == nil {
		return t, nil
	}
	t[0].Threshold = sc.Thresholds.Low
	t[1].Threshold = sc.Thresholds.High
	if math.IsInf(sc.Thresholds.High, 0) {
		return stage.CodeTable{}, fmt.Errorf("high threshold must be finite: %w", stage.ErrConfiguration)
	}
	if err := t.Validate(); err != nil {
		return stage.CodeTable{}, err
	}
	return t, nil
}

// Stages returns the stage configuration with all injections applied to an
// ideal pipeline. Later injections for the same stage win.
func (sc *Scenario) Stages() [stage.NumStages]stage.Config {
	stages := stage.IdealStages()
	for _, inj := range sc.Errors {
		if stage.CheckIndex(inj.Stage) != nil {
			continue
		}
		if inj.Gain != nil {
			stages[inj.Stage].GainError = *inj.Gain
		}
		if inj.Offset != nil {
			stages[inj.Stage].OffsetError = *inj.Offset
		}
	}
	return stages
}

// InjectGain appends a gain error injection.
func (sc *Scenario) InjectGain(stageIndex int, gain float64) {
	sc.Errors = append(sc.Errors, Injection{Stage: stageIndex, Gain: &gain})
}

// InjectOffset appends an offset error injection.
func (sc *Scenario) InjectOffset(stageIndex int, offset float64) {
	sc.Errors = append(sc.Errors, Injection{Stage: stageIndex, Offset: &offset})
}

// ParseAssignment parses a "stage=value" pair as given on the command line.
func ParseAssignment(s string) (int, float64, error) {
	idx, val, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("invalid assignment %q: expected stage=value: %w", s, stage.ErrConfiguration)
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid stage %q: %w", idx, err)
	}
	if err := stage.CheckIndex(i); err != nil {
		return 0, 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q: %w", val, err)
	}
	return i, v, nil
}
