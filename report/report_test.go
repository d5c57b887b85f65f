package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hammal/pipelinedadc/linearity"
	"github.com/hammal/pipelinedadc/pipeline"
	"github.com/hammal/pipelinedadc/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offsetRun evaluates a 64 step sweep with a comparator offset in stage 1.
func offsetRun(t *testing.T) (Header, *linearity.Result) {
	t.Helper()
	m, err := pipeline.NewModel()
	require.NoError(t, err)
	rng := sweep.Range{Low: -1, High: 1, Step: 2.0 / 64}

	e := linearity.New()
	ref, err := e.CaptureReference(m, rng)
	require.NoError(t, err)
	require.NoError(t, m.SetOffsetError(1, 0.2))
	res, err := e.Evaluate(m, rng, ref)
	require.NoError(t, err)
	require.Positive(t, res.Diverged)

	return Header{RunID: uuid.New(), Name: "offset", Stages: m.Stages()}, res
}

func TestWriteText(t *testing.T) {
	h, res := offsetRun(t)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, h, res, TextOptions{}))
	out := buf.String()

	assert.Contains(t, out, "offset (10 stages, 1.5 bit/stage)")
	assert.Contains(t, out, h.RunID.String())
	assert.Contains(t, out, "stage 1: gain=1 offset=0.2")
	assert.Contains(t, out, "Lowest Code 0 and highest Code 1023")
	assert.Contains(t, out, "w/out ERRORS = ")
	assert.Contains(t, out, "Worstcase DNL=15, worstcase INL=0")
	assert.Equal(t, len(res.Samples), strings.Count(out, "Input="))

	buf.Reset()
	require.NoError(t, WriteText(&buf, h, res, TextOptions{DivergedOnly: true}))
	assert.Equal(t, res.Diverged, strings.Count(buf.String(), "Input="))
}

func TestWriteTextIdeal(t *testing.T) {
	m, err := pipeline.NewModel()
	require.NoError(t, err)
	res, err := linearity.New().Evaluate(m, sweep.Range{Low: -1, High: 1, Step: 0.5}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Header{Stages: m.Stages()}, res, TextOptions{}))
	assert.Contains(t, buf.String(), "No errors injected")
	assert.NotContains(t, buf.String(), "Run ")
	assert.Equal(t, "codes 0..1023 worst DNL=255 INL=0", Summary(res))
}

func TestWriteCSV(t *testing.T) {
	_, res := offsetRun(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(res.Samples)+1)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, res.Samples[0].Signature.String(), rows[1][6])

	diverged := 0
	for _, row := range rows[1:] {
		if row[8] == "true" {
			diverged++
		}
	}
	assert.Equal(t, res.Diverged, diverged)
}

func TestSavePlot(t *testing.T) {
	h, res := offsetRun(t)
	path := filepath.Join(t.TempDir(), "linearity.png")

	require.NoError(t, SavePlot(path, h, res))
	for _, p := range []string{path, TransferPath(path)} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size())
	}
	assert.Equal(t, filepath.Join("out", "run-transfer.svg"), TransferPath(filepath.Join("out", "run.svg")))

	p, err := NewTransferPlot(h, res)
	require.NoError(t, err)
	assert.Contains(t, p.Title.Text, "transfer")
}

func TestWriteHTML(t *testing.T) {
	h, res := offsetRun(t)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, h, res))
	out := buf.String()
	assert.Contains(t, out, "DNL / INL")
	assert.Contains(t, out, "Transfer characteristic")
	assert.Contains(t, out, "echarts")
}
