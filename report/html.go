package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hammal/pipelinedadc/linearity"
)

// WriteHTML renders an interactive page with the DNL/INL chart and the
// transfer characteristic.
func WriteHTML(w io.Writer, h Header, res *linearity.Result) error {
	x := make([]string, len(res.Samples))
	dnl := make([]opts.LineData, len(res.Samples))
	inl := make([]opts.LineData, len(res.Samples))
	actual := make([]opts.LineData, len(res.Samples))
	ideal := make([]opts.LineData, len(res.Samples))
	for i, s := range res.Samples {
		x[i] = strconv.FormatFloat(s.Voltage, 'f', 6, 64)
		dnl[i] = opts.LineData{Value: s.DNL}
		inl[i] = opts.LineData{Value: s.INL}
		actual[i] = opts.LineData{Value: s.ActualCode}
		ideal[i] = opts.LineData{Value: s.IdealCode}
	}

	subtitle := fmt.Sprintf("worst DNL=%g INL=%g (%s), diverged=%d", res.WorstDNL, res.WorstINL, res.WorstCase, res.Diverged)

	lin := charts.NewLine()
	lin.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: h.Title(), Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "DNL / INL", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Input (V)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "LSB"}),
	)
	lin.SetXAxis(x).
		AddSeries("DNL", dnl).
		AddSeries("INL", inl)

	transfer := charts.NewLine()
	transfer.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Transfer characteristic", Subtitle: fmt.Sprintf("codes %d..%d", res.LowestCode, res.HighestCode)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Input (V)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Code"}),
	)
	transfer.SetXAxis(x).
		AddSeries("Actual", actual).
		AddSeries("Ideal", ideal)

	page := components.NewPage()
	page.PageTitle = h.Title()
	page.AddCharts(lin, transfer)
	return page.Render(w)
}
