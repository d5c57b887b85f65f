package main

import (
	"fmt"
	"strconv"

	"github.com/l0nax/go-spew/spew"
	"github.com/spf13/cobra"
)

var dump = spew.ConfigState{
	Indent:                  "\t",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func convertVoltage(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid voltage %q: %w", args[0], err)
	}
	sc, err := buildScenario(flagValues{ConfigPath: configPath, Offsets: offsets, Gains: gains})
	if err != nil {
		return err
	}
	exp, err := newExperiment(sc)
	if err != nil {
		return err
	}

	faulty, ideal, err := exp.Convert(v)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Input=%g Code=%d Codes = %s\n", v, faulty.Code, faulty.Signature())
	if faulty.Signature() != ideal.Signature() {
		fmt.Fprintf(w, "w/out ERRORS Code=%d Codes = %s\n", ideal.Code, ideal.Signature())
	}
	fmt.Fprint(w, dump.Sdump(faulty))
	return nil
}
