package sweep

import (
	"testing"

	"github.com/hammal/pipelinedadc/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()
	require.NoError(t, r.Validate())
	assert.Equal(t, 2.0/1024, r.Step)
	assert.Equal(t, 1024, r.Count())

	vs := r.Voltages()
	require.Len(t, vs, 1024)
	assert.Equal(t, -1+2.0/1024, vs[0])
	assert.Equal(t, 1.0, vs[len(vs)-1])
}

func TestCountMatchesFloor(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want int
	}{
		{"exact steps", Range{Low: 0, High: 1, Step: 0.25}, 4},
		{"partial last step", Range{Low: 0, High: 1, Step: 0.3}, 3},
		{"single step", Range{Low: -1, High: 1, Step: 2}, 1},
		{"step larger than span", Range{Low: 0, High: 1, Step: 2}, 0},
		{"inexact decimal step", Range{Low: 0, High: 1, Step: 0.1}, 10},
		{"invalid", Range{Low: 1, High: 0, Step: 0.1}, 0},
		{"too many samples", Range{Low: -1, High: 1, Step: 1e-300}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Count())
			for _, v := range tt.r.Voltages() {
				assert.LessOrEqual(t, v, tt.r.High)
				assert.Greater(t, v, tt.r.Low)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	bad := []Range{
		{Low: 1, High: 1, Step: 0.1},
		{Low: 0, High: 1, Step: 0},
		{Low: 0, High: 1, Step: -0.1},
		{Low: -1, High: 1, Step: 1e-300},
		{Low: -1, High: 1, Step: 1e-13},
		{Low: -1e308, High: 1e308, Step: 1},
		{Low: 1e17, High: 1e17 + 64, Step: 8},
	}
	for _, r := range bad {
		assert.ErrorIs(t, r.Validate(), stage.ErrConfiguration, "%v", r)
	}

	limit := Range{Low: 0, High: 1, Step: 1.0 / MaxSamples}
	assert.NoError(t, limit.Validate())
	assert.Equal(t, MaxSamples, limit.Count())
	limit.Step /= 2
	assert.ErrorIs(t, limit.Validate(), stage.ErrConfiguration)
}

func TestParse(t *testing.T) {
	r, err := Parse("-1:1:0.001953125")
	require.NoError(t, err)
	assert.Equal(t, Default(), r)

	r, err = Parse(" -0.5 : 0.5 : 0.25 ")
	require.NoError(t, err)
	assert.Equal(t, Range{Low: -0.5, High: 0.5, Step: 0.25}, r)
	assert.Equal(t, "-0.5:0.5:0.25", r.String())

	for _, s := range []string{"", "1:2", "a:1:0.1", "0:b:0.1", "0:1:c", "1:0:0.1", "0:1:0", "0:NaN:0.1"} {
		_, err := Parse(s)
		assert.Error(t, err, "%q", s)
	}
}
