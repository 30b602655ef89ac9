package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestIndependentRows(t *testing.T) {

	type test struct {
		rows   []float64
		n      int
		output []int
	}

	tests := map[string]test{
		"identity": {
			rows:   []float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
			n:      3,
			output: []int{0, 1, 2},
		},
		"duplicate": {
			rows:   []float64{1, -1, 0, 1, -1, 0, 0, 0, 1},
			n:      3,
			output: []int{0, 2},
		},
		"zero-row": {
			rows:   []float64{0, 0, 0, 0, 1, 0},
			n:      2,
			output: []int{1},
		},
		"combination": {
			rows:   []float64{1, 0, 0, 0, 0, 1, 1, 0, -1, 0, 1, 0},
			n:      4,
			output: []int{0, 1, 3},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := mat.NewDense(tt.n, 3, tt.rows)
			assert.Equal(t, tt.output, IndependentRows(a, 1e-10))
		})
	}
}

func TestSolveKKT(t *testing.T) {
	// min x² + y² subject to x + y = 2
	h := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	a := mat.NewDense(1, 2, []float64{1, 1})

	x, lambda, err := SolveKKT(h, []float64{0, 0}, a, []float64{2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, x, 1e-12)
	assert.InDeltaSlice(t, []float64{-2}, lambda, 1e-12)

	_, _, err = SolveKKT(h, []float64{0, 0}, mat.NewDense(2, 2, []float64{1, 1, 1, 1}), []float64{2, 2})
	assert.ErrorIs(t, err, SingularErr)
}

func TestLeastSquares(t *testing.T) {
	// y = 1 + 2x sampled exactly
	a := mat.NewDense(4, 2, []float64{1, 0, 1, 1, 1, 2, 1, 3})
	b := mat.NewDense(4, 1, []float64{1, 3, 5, 7})
	x, err := LeastSquares(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1, x.At(0, 0), 1e-12)
	assert.InDelta(t, 2, x.At(1, 0), 1e-12)

	_, err = LeastSquares(mat.NewDense(1, 2, []float64{1, 1}), mat.NewDense(1, 1, []float64{1}))
	assert.ErrorIs(t, err, SingularErr)
}

func TestSolve3(t *testing.T) {
	x, err := Solve3([3][3]float64{{2, 0, 0}, {0, 4, 0}, {1, 0, -1}}, [3]float64{2, 8, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 1}, x[:], 1e-12)

	_, err = Solve3([3][3]float64{{1, 2, 3}, {2, 4, 6}, {0, 0, 1}}, [3]float64{1, 1, 1})
	assert.ErrorIs(t, err, SingularErr)
}
