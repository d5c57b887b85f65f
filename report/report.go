// Package report renders linearity results: a human readable listing, a CSV
// table, a PNG plot and an interactive HTML chart.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/hammal/pipelinedadc/gonumExtensions"
	"github.com/hammal/pipelinedadc/linearity"
	"github.com/hammal/pipelinedadc/stage"
)

// Header identifies the run a result belongs to.
type Header struct {
	RunID  uuid.UUID
	Name   string
	Stages [stage.NumStages]stage.Config
}

// Title returns a one line description of the run.
func (h Header) Title() string {
	name := h.Name
	if name == "" {
		name = "pipelined ADC"
	}
	return fmt.Sprintf("%s (%d stages, 1.5 bit/stage)", name, stage.NumStages)
}

// Injected returns a description of every non ideal stage.
func (h Header) Injected() []string {
	var out []string
	for i, s := range h.Stages {
		if !s.IsIdeal() {
			out = append(out, fmt.Sprintf("stage %d: %s", i, s))
		}
	}
	return out
}

// TextOptions controls WriteText.
type TextOptions struct {
	// DivergedOnly lists only the samples whose decision path changed.
	DivergedOnly bool
}

// WriteText writes the per-sample listing followed by the performance
// metrics.
func WriteText(w io.Writer, h Header, res *linearity.Result, opts TextOptions) error {
	ew := &errWriter{w: w}

	ew.printf("%s\n", h.Title())
	if h.RunID != uuid.Nil {
		ew.printf("Run %s\n", h.RunID)
	}
	if injected := h.Injected(); len(injected) > 0 {
		gain, offset := gonumExtensions.Deviation(h.Stages)
		ew.printf("Injected errors (|gain-1|=%.4g, |offset|=%.4g):\n", gain, offset)
		for _, line := range injected {
			ew.printf("   %s\n", line)
		}
	} else {
		ew.printf("No errors injected\n")
	}
	ew.printf("Sweep %s, %d samples\n", res.Range, len(res.Samples))
	ew.printf("Lowest Code %d and highest Code %d\n\n", res.LowestCode, res.HighestCode)

	for _, s := range res.Samples {
		if opts.DivergedOnly && !s.Diverged {
			continue
		}
		codes := s.Signature.String()
		if s.Diverged {
			codes += "  w/out ERRORS = " + s.Reference.String()
		}
		ew.printf("Input=%-12.9g IdealCode=%-10.6g ActualCode=%-5d DNL=%-4g INL=%-10.6g Codes = %s\n",
			s.Voltage, s.IdealCode, s.ActualCode, s.DNL, s.INL, codes)
	}

	sum := res.Summary
	ew.printf("\nPERFORMANCE METRICS (%s):\n", res.WorstCase)
	ew.printf("Worstcase DNL=%g, worstcase INL=%g\n", res.WorstDNL, res.WorstINL)
	ew.printf("DNL range [%g, %g], mean %.4g, std %.4g\n", sum.MinDNL, sum.MaxDNL, sum.MeanDNL, sum.StdDNL)
	ew.printf("INL range [%.6g, %.6g], mean %.4g, std %.4g\n", sum.MinINL, sum.MaxINL, sum.MeanINL, sum.StdINL)
	ew.printf("Skipped codes %d, non-monotonic steps %d, diverged decision paths %d\n",
		sum.SkippedCodes, sum.NonMonotonic, res.Diverged)
	return ew.err
}

// Summary returns the performance metrics as a single line.
func Summary(res *linearity.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "codes %d..%d worst DNL=%g INL=%g", res.LowestCode, res.HighestCode, res.WorstDNL, res.WorstINL)
	if res.Diverged > 0 {
		fmt.Fprintf(&b, " diverged=%d", res.Diverged)
	}
	return b.String()
}

// errWriter keeps the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
