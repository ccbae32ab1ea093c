package utils

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func NewVecConst(N int, val float64) (V *mat.VecDense) {
	var (
		x = make([]float64, N)
	)
	for i := 0; i < N; i++ {
		x[i] = val
	}
	V = mat.NewVecDense(N, x)
	return
}

// ComponentSums sums an interleaved per-vertex field component-wise. The
// data layout is vertexID*dims + component; the result has dims entries.
func ComponentSums(v *mat.VecDense, dims int) (sums []float64) {
	var (
		data = v.RawVector().Data
	)
	sums = make([]float64, dims)
	for i, val := range data {
		sums[i%dims] += val
	}
	return
}

// MaxAbsDiff returns the largest absolute component difference of two
// equal-length vectors
func MaxAbsDiff(a, b *mat.VecDense) (maxDiff float64) {
	var (
		da = a.RawVector().Data
		db = b.RawVector().Data
	)
	for i := range da {
		if d := da[i] - db[i]; d > maxDiff {
			maxDiff = d
		} else if -d > maxDiff {
			maxDiff = -d
		}
	}
	return
}

// VecEqualApprox compares two vectors within tol
func VecEqualApprox(a, b *mat.VecDense, tol float64) bool {
	if a.Len() != b.Len() {
		return false
	}
	return floats.EqualApprox(a.RawVector().Data, b.RawVector().Data, tol)
}
