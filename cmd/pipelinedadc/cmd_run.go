package main

import (
	"os"

	adc "github.com/hammal/pipelinedadc"
	"github.com/hammal/pipelinedadc/config"
	"github.com/hammal/pipelinedadc/report"
	"github.com/spf13/cobra"
)

func runExperiment(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(currentFlags())
	if err != nil {
		return err
	}
	exp, err := newExperiment(sc)
	if err != nil {
		return err
	}

	out, err := exp.Run()
	if err != nil {
		return err
	}
	h := out.Header()
	log.Info().Str("run", out.RunID.String()).Str("summary", report.Summary(out.Result)).Msg("experiment done")

	if err := report.WriteText(cmd.OutOrStdout(), h, out.Result, report.TextOptions{DivergedOnly: sc.Output.DivergedOnly}); err != nil {
		return err
	}

	if p := sc.Output.CSV; p != "" {
		if err := writeFile(p, func(f *os.File) error { return report.WriteCSV(f, out.Result) }); err != nil {
			return err
		}
		log.Info().Str("path", p).Msg("wrote csv")
	}
	if p := sc.Output.Plot; p != "" {
		if err := report.SavePlot(p, h, out.Result); err != nil {
			return err
		}
		log.Info().Str("path", p).Str("transfer", report.TransferPath(p)).Msg("wrote plots")
	}
	if p := sc.Output.HTML; p != "" {
		if err := writeFile(p, func(f *os.File) error { return report.WriteHTML(f, h, out.Result) }); err != nil {
			return err
		}
		log.Info().Str("path", p).Msg("wrote html")
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// newExperiment turns a validated scenario into an experiment.
func newExperiment(sc *config.Scenario) (*adc.Experiment, error) {
	sys, err := adc.SystemFromScenario(sc)
	if err != nil {
		return nil, err
	}
	worst, err := sc.Worst()
	if err != nil {
		return nil, err
	}
	return adc.NewExperiment(sys,
		adc.WithLogger(log),
		adc.WithWorstCase(worst),
		adc.WithTrace(trace),
	)
}
