package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath   string
	rangeSpec    string
	offsets      []string
	gains        []string
	worstCase    string
	csvPath      string
	plotPath     string
	htmlPath     string
	verbose      bool
	trace        bool
	divergedOnly bool

	rootCmd = &cobra.Command{
		Use:   "pipelinedadc",
		Short: "Simulate a 10 stage 1.5 bit/stage pipelined ADC",
		Long: `pipelinedadc sweeps a pipelined ADC over its input range, injects
comparator offset and residue gain errors into individual stages and reports
the resulting differential and integral non-linearity.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log = log.Level(zerolog.DebugLevel)
			}
		},
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Capture the ideal sweep, inject errors and evaluate DNL/INL",
		Args:  cobra.NoArgs,
		RunE:  runExperiment,
	}

	convertCmd = &cobra.Command{
		Use:   "convert [volts]",
		Short: "Convert a single voltage and dump every stage",
		Args:  cobra.ExactArgs(1),
		RunE:  convertVoltage,
	}
)

func init() {
	rootCmd.AddCommand(runCmd, convertCmd)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Scenario YAML file")
	rootCmd.PersistentFlags().StringArrayVar(&offsets, "offset", nil, "Comparator offset error as stage=value (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&gains, "gain", nil, "Residue gain error as stage=value (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "Log every stage of every conversion (with --verbose)")

	runCmd.Flags().StringVarP(&rangeSpec, "range", "r", "", "Sweep range as low:high:step")
	runCmd.Flags().StringVar(&worstCase, "worst", "", "Worst case accumulation: positive or absolute")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "Write per sample results to a CSV file")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "Write DNL/INL plot (.png, .svg or .pdf)")
	runCmd.Flags().StringVar(&htmlPath, "html", "", "Write interactive DNL/INL charts to an HTML file")
	runCmd.Flags().BoolVar(&divergedOnly, "diverged-only", false, "Only print samples whose stage decisions changed")
}
