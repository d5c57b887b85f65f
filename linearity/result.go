package linearity

import (
	"github.com/hammal/pipelinedadc/pipeline"
	"github.com/hammal/pipelinedadc/sweep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is the score of one swept voltage.
type Sample struct {
	Voltage    float64
	ActualCode int
	IdealCode  float64
	DNL        float64
	INL        float64
	// Signature is the decision path of this conversion.
	Signature pipeline.Signature
	// Reference is the decision path recorded for the same sample in the
	// reference sweep. It is the zero Signature if no reference was given.
	Reference pipeline.Signature
	// Diverged is set if Signature differs from Reference.
	Diverged bool
}

// Result holds the scored sweep.
type Result struct {
	Range     sweep.Range
	WorstCase WorstCase

	LowestCode   int
	HighestCode  int
	CodesPerVolt float64
	VoltsPerCode float64

	Samples []Sample

	WorstDNL float64
	WorstINL float64
	// Diverged counts the samples whose signature differs from the reference.
	Diverged int

	Summary Summary
}

// Summary holds descriptive statistics of a sweep.
type Summary struct {
	MinDNL, MaxDNL   float64
	MinINL, MaxINL   float64
	MeanDNL, StdDNL  float64
	MeanINL, StdINL  float64
	// SkippedCodes counts the output codes jumped over between samples.
	SkippedCodes int
	// NonMonotonic counts the samples whose code is below the previous one.
	NonMonotonic int
}

// DivergedSamples returns the samples whose decision path differs from the
// reference.
func (r *Result) DivergedSamples() []Sample {
	var out []Sample
	for _, s := range r.Samples {
		if s.Diverged {
			out = append(out, s)
		}
	}
	return out
}

// DNL returns the DNL of every sample.
func (r *Result) DNL() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.DNL
	}
	return out
}

// INL returns the INL of every sample.
func (r *Result) INL() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.INL
	}
	return out
}

func summarize(res *Result) Summary {
	var sum Summary
	if len(res.Samples) == 0 {
		return sum
	}
	dnl, inl := res.DNL(), res.INL()
	for _, d := range dnl {
		if d > 0 {
			sum.SkippedCodes += int(d)
		}
		if d < -1 {
			sum.NonMonotonic++
		}
	}
	sum.MinDNL, sum.MaxDNL = floats.Min(dnl), floats.Max(dnl)
	sum.MinINL, sum.MaxINL = floats.Min(inl), floats.Max(inl)
	sum.MeanDNL, sum.StdDNL = stat.MeanStdDev(dnl, nil)
	sum.MeanINL, sum.StdINL = stat.MeanStdDev(inl, nil)
	return sum
}
