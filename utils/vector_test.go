package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewVecConst(t *testing.T) {
	v := NewVecConst(4, 2.5)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 2.5, v.AtVec(3))
}

func TestComponentSums(t *testing.T) {
	// Two vertices, three components each
	v := mat.NewVecDense(6, []float64{1, 2, 3, 10, 20, 30})
	sums := ComponentSums(v, 3)
	assert.Equal(t, []float64{11, 22, 33}, sums)
}

func TestMaxAbsDiff(t *testing.T) {
	a := mat.NewVecDense(3, []float64{1, 2, 3})
	b := mat.NewVecDense(3, []float64{1, 4, 2.5})
	assert.Equal(t, 2., MaxAbsDiff(a, b))
	assert.True(t, VecEqualApprox(a, a, 1.e-14))
	assert.False(t, VecEqualApprox(a, b, 1.e-14))
}
