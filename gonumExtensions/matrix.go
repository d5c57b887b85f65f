package gonumExtensions

import (
	"math"

	"github.com/hammal/pipelinedadc/stage"
	"gonum.org/v1/gonum/mat"
)

// Ones returns a length n vector filled with ones
func Ones(n int) *mat.VecDense {
	return Full(n, 1.)
}

// Full returns a length n vector filled with value
func Full(n int, value float64) *mat.VecDense {
	data := make([]float64, n)
	for index := range data {
		data[index] = value
	}
	return mat.NewVecDense(n, data)
}

// NANORINF checks if there are any NAN or INF in vector and returns the
// index of the first one found, or -1.
func NANORINF(vector mat.Vector) int {
	for index := 0; index < vector.Len(); index++ {
		if math.IsNaN(vector.AtVec(index)) || math.IsInf(vector.AtVec(index), 0) {
			return index
		}
	}
	return -1
}

// StageVectors splits the stage configurations into a gain error vector and
// an offset error vector, indexed by stage number.
func StageVectors(stages [stage.NumStages]stage.Config) (gain, offset *mat.VecDense) {
	gain = mat.NewVecDense(stage.NumStages, nil)
	offset = mat.NewVecDense(stage.NumStages, nil)
	for index, s := range stages {
		gain.SetVec(index, s.GainError)
		offset.SetVec(index, s.OffsetError)
	}
	return gain, offset
}

// Deviation returns the distance of gain from the ideal unit gain and of
// offset from zero, as Euclidean norms.
func Deviation(stages [stage.NumStages]stage.Config) (gain, offset float64) {
	g, o := StageVectors(stages)
	g.SubVec(g, Ones(stage.NumStages))
	return mat.Norm(g, 2), mat.Norm(o, 2)
}
