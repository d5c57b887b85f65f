package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hammal/pipelinedadc/linearity"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// NewLinearityPlot plots DNL and INL against the input voltage.
func NewLinearityPlot(h Header, res *linearity.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - DNL/INL", h.Title())
	p.X.Label.Text = "Input (V)"
	p.Y.Label.Text = "LSB"

	dnl, inl := plottify(res)
	if err := plotutil.AddLines(p, "DNL", dnl, "INL", inl); err != nil {
		return nil, err
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

// NewTransferPlot plots the actual and ideal code against the input voltage.
func NewTransferPlot(h Header, res *linearity.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - transfer characteristic", h.Title())
	p.X.Label.Text = "Input (V)"
	p.Y.Label.Text = "Code"

	actual := make(plotter.XYs, len(res.Samples))
	ideal := make(plotter.XYs, len(res.Samples))
	for i, s := range res.Samples {
		actual[i] = plotter.XY{X: s.Voltage, Y: float64(s.ActualCode)}
		ideal[i] = plotter.XY{X: s.Voltage, Y: s.IdealCode}
	}
	if err := plotutil.AddLines(p, "Actual", actual, "Ideal", ideal); err != nil {
		return nil, err
	}
	p.Legend.Top = true
	return p, nil
}

// TransferPath returns the file the transfer plot is saved to next to the
// DNL/INL plot at path, e.g. out.png -> out-transfer.png.
func TransferPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-transfer" + ext
}

// SavePlot writes the DNL/INL plot to path and the transfer plot to
// TransferPath(path). The format follows the file extension (png, svg, pdf,
// eps).
func SavePlot(path string, h Header, res *linearity.Result) error {
	p, err := NewLinearityPlot(h, res)
	if err != nil {
		return fmt.Errorf("build linearity plot: %w", err)
	}
	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save linearity plot: %w", err)
	}

	p, err = NewTransferPlot(h, res)
	if err != nil {
		return fmt.Errorf("build transfer plot: %w", err)
	}
	if err := p.Save(10*vg.Inch, 5*vg.Inch, TransferPath(path)); err != nil {
		return fmt.Errorf("save transfer plot: %w", err)
	}
	return nil
}

func plottify(res *linearity.Result) (dnl, inl plotter.XYs) {
	dnlValues, inlValues := res.DNL(), res.INL()
	dnl = make(plotter.XYs, len(res.Samples))
	inl = make(plotter.XYs, len(res.Samples))
	for i, s := range res.Samples {
		dnl[i].X, dnl[i].Y = s.Voltage, dnlValues[i]
		inl[i].X, inl[i].Y = s.Voltage, inlValues[i]
	}
	return dnl, inl
}
