package spline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamped(t *testing.T) {

	type test struct {
		nctl  int
		order int
		dist  Distribution
	}

	tests := map[string]test{
		"cubic-cosine": {
			nctl:  13,
			order: 4,
			dist:  Cosine,
		},
		"cubic-uniform": {
			nctl:  9,
			order: 4,
			dist:  Uniform,
		},
		"bezier": {
			nctl:  4,
			order: 4,
			dist:  Cosine,
		},
		"quadratic": {
			nctl:  7,
			order: 3,
			dist:  Uniform,
		},
		"linear": {
			nctl:  5,
			order: 2,
			dist:  Cosine,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			knots := Clamped(tt.nctl, tt.order, tt.dist)
			require.Len(t, knots, tt.nctl+tt.order)
			require.NoError(t, knots.Validate(tt.order))
			for i := 0; i < tt.order; i++ {
				assert.Equal(t, 0.0, knots[i], fmt.Sprintf("knot %d", i))
				assert.Equal(t, 1.0, knots[len(knots)-1-i], fmt.Sprintf("knot %d", len(knots)-1-i))
			}
			for i := 1; i < len(knots); i++ {
				assert.GreaterOrEqual(t, knots[i], knots[i-1])
			}
			assert.Equal(t, tt.nctl, knots.Count(tt.order))
			lo, hi := knots.Domain(tt.order)
			assert.Equal(t, 0.0, lo)
			assert.Equal(t, 1.0, hi)
		})
	}
}

func TestClamped_Distribution(t *testing.T) {
	uniform := Clamped(8, 4, Uniform)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0.2, 0.4, 0.6, 0.8, 1, 1, 1, 1}, []float64(uniform), 1e-15)

	cosine := Clamped(8, 4, Cosine)
	// interior knots bunch up at both ends
	assert.Less(t, cosine[4]-cosine[3], uniform[4]-uniform[3])
	assert.Less(t, cosine[8]-cosine[7], uniform[8]-uniform[7])
	assert.InDelta(t, 1-cosine[7], cosine[4], 1e-15)
}

func TestClamped_Panics(t *testing.T) {
	assert.Panics(t, func() {
		Clamped(3, 4, Uniform)
	})
}

func TestKnots_Span(t *testing.T) {

	knots := Knots{0, 0, 0, 0, 0.25, 0.5, 0.5, 1, 1, 1, 1}

	type test struct {
		u    float64
		span int
	}

	tests := map[string]test{
		"start":         {u: 0, span: 3},
		"first":         {u: 0.1, span: 3},
		"knot":          {u: 0.25, span: 4},
		"double-knot":   {u: 0.5, span: 6},
		"last":          {u: 0.75, span: 6},
		"end":           {u: 1, span: 6},
		"extrapolate-l": {u: -0.5, span: 3},
		"extrapolate-r": {u: 1.5, span: 6},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.span, knots.Span(4, tt.u))
		})
	}
}

func TestKnots_Validate(t *testing.T) {
	assert.Error(t, Knots{0, 0, 1, 0.5}.Validate(2))
	assert.Error(t, Knots{0, 0, 1}.Validate(2))
	assert.Error(t, Knots{0, 1}.Validate(0))
	assert.NoError(t, Knots{0, 0, 1, 1}.Validate(2))
}
