package linearity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hammal/pipelinedadc/pipeline"
	"github.com/hammal/pipelinedadc/stage"
	"github.com/hammal/pipelinedadc/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idealModel(t *testing.T) *pipeline.Model {
	t.Helper()
	m, err := pipeline.NewModel()
	require.NoError(t, err)
	return m
}

func TestEvaluateIdeal(t *testing.T) {
	m := idealModel(t)
	e := New()
	rng := sweep.Default()

	ref, err := e.CaptureReference(m, rng)
	require.NoError(t, err)
	require.Len(t, ref, 1024)

	res, err := e.Evaluate(m, rng, ref)
	require.NoError(t, err)

	assert.Equal(t, 0, res.LowestCode)
	assert.Equal(t, 1023, res.HighestCode)
	assert.Equal(t, 512.0, res.CodesPerVolt)
	assert.Equal(t, 2.0/1024, res.VoltsPerCode)
	assert.Equal(t, 0.0, res.WorstDNL)
	assert.LessOrEqual(t, res.WorstINL, 0.5)
	assert.Zero(t, res.Diverged)
	assert.Empty(t, res.DivergedSamples())
	require.Len(t, res.Samples, 1024)

	first := res.Samples[0]
	assert.Equal(t, -1+2.0/1024, first.Voltage)
	assert.Equal(t, 0, first.ActualCode)
	assert.InDelta(t, 0.0, first.IdealCode, 1e-9)

	assert.Equal(t, 0, res.Summary.SkippedCodes)
	assert.Equal(t, 0, res.Summary.NonMonotonic)
	assert.InDelta(t, 0.0, res.Summary.StdINL, 1e-9)
}

func TestReferenceIsStable(t *testing.T) {
	m := idealModel(t)
	e := New()

	a, err := e.CaptureReference(m, sweep.Default())
	require.NoError(t, err)
	b, err := e.CaptureReference(m, sweep.Default())
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("reference sweeps differ (-first +second):\n%s", diff)
	}
}

func TestOffsetInjectionIsObservable(t *testing.T) {
	m := idealModel(t)
	e := New()
	rng := sweep.Default()

	ref, err := e.CaptureReference(m, rng)
	require.NoError(t, err)

	require.NoError(t, m.SetOffsetError(1, 0.2))
	res, err := e.Evaluate(m, rng, ref)
	require.NoError(t, err)

	assert.Equal(t, 306, res.Diverged)
	diverged := res.DivergedSamples()
	require.Len(t, diverged, res.Diverged)
	for _, s := range diverged {
		assert.NotEqual(t, s.Signature, s.Reference)
	}
	// The redundancy of the 1.5-bit stages hides the offset in the codes.
	assert.Equal(t, 0.0, res.WorstDNL)
	assert.Equal(t, 0.0, res.WorstINL)
}

func TestGainErrorWorstCase(t *testing.T) {
	m := idealModel(t)
	rng := sweep.Default()
	ref, err := New().CaptureReference(m, rng)
	require.NoError(t, err)
	require.NoError(t, m.SetGainError(2, 1.1))

	tests := []struct {
		mode     WorstCase
		worstDNL float64
		worstINL float64
	}{
		{WorstPositive, 1, 6},
		{WorstAbsolute, 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			res, err := New(WithWorstCase(tt.mode)).Evaluate(m, rng, ref)
			require.NoError(t, err)

			assert.Equal(t, tt.mode, res.WorstCase)
			assert.Equal(t, 0, res.LowestCode)
			assert.Equal(t, 1023, res.HighestCode)
			assert.InDelta(t, tt.worstDNL, res.WorstDNL, 1e-9)
			assert.InDelta(t, tt.worstINL, res.WorstINL, 1e-9)

			assert.InDelta(t, -6.0, res.Summary.MinDNL, 1e-9)
			assert.InDelta(t, 1.0, res.Summary.MaxDNL, 1e-9)
			assert.InDelta(t, -5.0, res.Summary.MinINL, 1e-9)
			assert.InDelta(t, 6.0, res.Summary.MaxINL, 1e-9)
			assert.InDelta(t, 0.0, res.Summary.MeanDNL, 1e-9)
			assert.Equal(t, 95, res.Summary.SkippedCodes)
			assert.Equal(t, 14, res.Summary.NonMonotonic)
			assert.Equal(t, 978, res.Diverged)
		})
	}
}

// A converter whose codes all sit below the ideal line still reports worst
// values of zero in positive mode.
type shiftedConverter struct {
	m     *pipeline.Model
	shift int
}

func (s shiftedConverter) Convert(v float64) (pipeline.ConversionResult, error) {
	res, err := s.m.Convert(v)
	res.Code -= s.shift
	return res, err
}

func TestWorstPositiveNeverNegative(t *testing.T) {
	m := idealModel(t)
	// High is never reached by the progression, so every sample converts
	// to code 0: DNL is -1 after the first sample and INL is negative.
	rng := sweep.Range{Low: -1, High: 1, Step: 0.3}

	conv := stuckConverter{}
	res, err := New().Evaluate(conv, rng, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.WorstDNL)
	assert.Equal(t, 0.0, res.WorstINL)
	assert.Less(t, res.Summary.MaxINL, 0.0)

	res, err = New().Evaluate(shiftedConverter{m: m, shift: 3}, rng, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.WorstDNL, 0.0)
	assert.GreaterOrEqual(t, res.WorstINL, 0.0)
}

type stuckConverter struct{}

func (stuckConverter) Convert(v float64) (pipeline.ConversionResult, error) {
	var res pipeline.ConversionResult
	if v >= 1 {
		res.Code = pipeline.MaxCode
	}
	return res, nil
}

func TestEvaluateWithoutReference(t *testing.T) {
	m := idealModel(t)
	res, err := New().Evaluate(m, sweep.Default(), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Diverged)
	assert.Equal(t, pipeline.Signature{}, res.Samples[0].Reference)
}

func TestEvaluateRejectsShortReference(t *testing.T) {
	m := idealModel(t)
	short := make([]pipeline.Signature, 10)
	_, err := New().Evaluate(m, sweep.Default(), short)
	assert.ErrorIs(t, err, stage.ErrConfiguration)

	_, err = New().Evaluate(m, sweep.Range{Low: 1, High: -1, Step: 0.1}, nil)
	assert.ErrorIs(t, err, stage.ErrConfiguration)
}

type brokenConverter struct{}

func (brokenConverter) Convert(v float64) (pipeline.ConversionResult, error) {
	return pipeline.ConversionResult{}, &stage.Error{Stage: 4, Input: v, Code: 3, Wrapped: stage.ErrInvalidState}
}

func TestEvaluateSurfacesInvalidState(t *testing.T) {
	_, err := New().Evaluate(brokenConverter{}, sweep.Default(), nil)
	assert.ErrorIs(t, err, stage.ErrInvalidState)

	_, err = New().CaptureReference(brokenConverter{}, sweep.Default())
	assert.ErrorIs(t, err, stage.ErrInvalidState)
}

func TestParseWorstCase(t *testing.T) {
	for in, want := range map[string]WorstCase{"": WorstPositive, "positive": WorstPositive, "absolute": WorstAbsolute, "abs": WorstAbsolute} {
		got, err := ParseWorstCase(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseWorstCase("negative")
	assert.ErrorIs(t, err, stage.ErrConfiguration)
}

func TestResultSeries(t *testing.T) {
	res := &Result{Samples: []Sample{{DNL: 0, INL: 0.5}, {DNL: 1, INL: -0.25}}}
	assert.Equal(t, []float64{0, 1}, res.DNL())
	assert.Equal(t, []float64{0.5, -0.25}, res.INL())
}
