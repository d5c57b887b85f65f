package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/hammal/pipelinedadc/linearity"
)

var csvHeader = []string{"index", "input_v", "ideal_code", "actual_code", "dnl", "inl", "signature", "reference", "diverged"}

// WriteCSV writes one row per sample.
func WriteCSV(w io.Writer, res *linearity.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, s := range res.Samples {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(s.Voltage, 'g', -1, 64),
			strconv.FormatFloat(s.IdealCode, 'g', -1, 64),
			strconv.Itoa(s.ActualCode),
			strconv.FormatFloat(s.DNL, 'g', -1, 64),
			strconv.FormatFloat(s.INL, 'g', -1, 64),
			s.Signature.String(),
			s.Reference.String(),
			strconv.FormatBool(s.Diverged),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
