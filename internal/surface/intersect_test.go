package surface

import (
	"testing"

	xmath "github.com/drakos74/free-spline/internal/math"
	"github.com/drakos74/free-spline/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func plane(t *testing.T) *Surface {
	u := xmath.Linspace(0, 1, 6)
	p := xmath.Plane(model.Point{}, model.Point{1, 0, 0}, model.Point{0, 1, 0}, u, u)
	s, err := New(model.NewSamples(p), interpolateConfig(), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return s
}

func TestSurface_FindIntersection(t *testing.T) {

	type test struct {
		origin r3.Vec
		dir    r3.Vec
		u0, v0 float64
		u, v   float64
		s      float64
	}

	tests := map[string]test{
		"vertical": {
			origin: r3.Vec{X: 0.3, Y: 0.6, Z: 1},
			dir:    r3.Vec{Z: -1},
			u0:     0.5,
			v0:     0.5,
			u:      0.3,
			v:      0.6,
			s:      1,
		},
		"oblique": {
			origin: r3.Vec{X: 0, Y: 0, Z: 2},
			dir:    r3.Vec{X: 0.25, Y: 0.1, Z: -1},
			u0:     0,
			v0:     0,
			u:      0.5,
			v:      0.2,
			s:      2,
		},
		"below": {
			origin: r3.Vec{X: 0.9, Y: 0.1, Z: -3},
			dir:    r3.Vec{Z: 2},
			u0:     0.1,
			v0:     0.9,
			u:      0.9,
			v:      0.1,
			s:      1.5,
		},
	}

	s := plane(t)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			in, err := s.FindIntersection(0, tt.origin, tt.dir, tt.u0, tt.v0)
			require.NoError(t, err)
			assert.True(t, in.Converged)
			assert.LessOrEqual(t, in.Iterations, 25)
			assert.InDelta(t, tt.u, in.U, 1e-10)
			assert.InDelta(t, tt.v, in.V, 1e-10)
			assert.InDelta(t, tt.s, in.S, 1e-10)
			assertPoint(t, model.Point{tt.u, tt.v, 0}, in.Point, 1e-10)
		})
	}
}

func TestSurface_FindIntersection_Curved(t *testing.T) {
	const h, span = 0.2, 2.0
	s, err := New(xmath.Lens(h, span, 9, 5), interpolateConfig(), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	// upper surface x = u², y = h u (1-u), z = span v
	in, err := s.FindIntersection(0, r3.Vec{X: 0.25, Y: 1, Z: 0.5}, r3.Vec{Y: -1}, 0.3, 0.3)
	require.NoError(t, err)
	assert.True(t, in.Converged)
	assert.InDelta(t, 0.5, in.U, 1e-10)
	assert.InDelta(t, 0.25, in.V, 1e-10)
	assert.InDelta(t, 1-h*0.25, in.S, 1e-10)
}

func TestSurface_FindIntersection_Halving(t *testing.T) {
	s := plane(t)

	// the ray hits the plane extension at u = 1.5, outside of the parametric box
	steps := make([]Step, 0)
	in, err := s.FindIntersection(0, r3.Vec{X: 1.5, Y: 0.5, Z: 1}, r3.Vec{Z: -1}, 0.9, 0.5, Observe(func(step Step) {
		steps = append(steps, step)
	}))
	require.NoError(t, err)

	assert.False(t, in.Converged)
	assert.Equal(t, 25, in.Iterations)
	assert.Equal(t, 1.0, in.U)
	assert.InDelta(t, 0.5, in.V, 1e-10)

	require.Len(t, steps, 25)
	for i, step := range steps {
		assert.Equal(t, i, step.Iteration)
		// every evaluation happens inside the box
		assert.GreaterOrEqual(t, step.U, -1.0)
		assert.LessOrEqual(t, step.U, 1.0)
		assert.GreaterOrEqual(t, step.V, -1.0)
		assert.LessOrEqual(t, step.V, 1.0)
		assert.True(t, step.Halved)
	}
	// the first full step of 0.6 gets halved
	assert.InDelta(t, 0.3, steps[0].Update[0], 1e-10)
	assert.InDelta(t, 0.25, steps[1].Update[0], 1e-10)
}

func TestSurface_FindIntersection_Parallel(t *testing.T) {
	s := plane(t)
	_, err := s.FindIntersection(0, r3.Vec{X: 0.5, Y: 0.5, Z: 1}, r3.Vec{X: 1}, 0.5, 0.5)
	assert.ErrorIs(t, err, SingularErr)
}
