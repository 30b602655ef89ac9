package surface

import (
	"errors"
	"fmt"

	xmath "github.com/drakos74/free-spline/internal/math"
	"github.com/drakos74/free-spline/internal/model"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	maxIterations = 25
	// tolerance is the norm of the newton update below which the intersection has converged.
	tolerance = 1e-12
	// the parametric box the newton iterate is kept in
	lo, hi = -1.0, 1.0
)

// SingularErr is returned when the newton matrix of the intersection cannot be inverted,
// e.g. for a ray parallel to the surface.
var SingularErr = errors.New("singular intersection")

// Intersection is the point where a ray meets a surface.
type Intersection struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
	// S is the distance along the ray direction.
	S          float64     `json:"s"`
	Point      model.Point `json:"point"`
	Iterations int         `json:"iterations"`
	Converged  bool        `json:"converged"`
}

// Step is a single newton iteration of the intersection,
// evaluated at (U,V,S) and moving by Update.
type Step struct {
	Iteration int
	U, V, S   float64
	Update    [3]float64
	Halved    bool
}

// IntersectOption configures the intersection search.
type IntersectOption func(o *intersectOptions)

type intersectOptions struct {
	observe func(step Step)
}

// Observe registers a callback receiving every newton step.
func Observe(observe func(step Step)) IntersectOption {
	return func(o *intersectOptions) {
		o.observe = observe
	}
}

// FindIntersection finds the parametric coordinates where the ray origin + s*dir meets the given surface,
// starting the newton iteration from (u0,v0) and s = 0.
// A search that does not converge returns the last iterate, with Converged set to false.
func (s *Surface) FindIntersection(surf int, origin, dir r3.Vec, u0, v0 float64, opts ...IntersectOption) (Intersection, error) {
	o := &intersectOptions{}
	for _, opt := range opts {
		opt(o)
	}

	u, v, t := u0, v0, 0.0
	var update [3]float64
	for k := 0; k < maxIterations; k++ {
		u = xmath.Clamp(u, lo, hi)
		v = xmath.Clamp(v, lo, hi)

		x := s.Value(surf, u, v).Vec()
		f := r3.Sub(x, r3.Add(origin, r3.Scale(t, dir)))

		j := s.Jacobian(surf, u, v)
		a := [3][3]float64{
			{j[0][0], j[0][1], -dir.X},
			{j[1][0], j[1][1], -dir.Y},
			{j[2][0], j[2][1], -dir.Z},
		}
		var err error
		update, err = xmath.Solve3(a, [3]float64{-f.X, -f.Y, -f.Z})
		if err != nil {
			return Intersection{}, fmt.Errorf("could not intersect surface %d at iteration %d (u=%f, v=%f): %v: %w", surf, k, u, v, err, SingularErr)
		}

		halved := xmath.Outside(u+update[0], lo, hi) || xmath.Outside(v+update[1], lo, hi)
		if halved {
			for i := range update {
				update[i] /= 2
			}
		}

		if o.observe != nil {
			o.observe(Step{
				Iteration: k,
				U:         u,
				V:         v,
				S:         t,
				Update:    update,
				Halved:    halved,
			})
		}

		u += update[0]
		v += update[1]
		t += update[2]

		if r3.Norm(r3.Vec{X: update[0], Y: update[1], Z: update[2]}) < tolerance {
			return s.intersection(surf, u, v, t, k+1, true), nil
		}
	}

	s.logger.Warn().
		Int("surface", surf).
		Float64("u", u).
		Float64("v", v).
		Float64("s", t).
		Float64("update", r3.Norm(r3.Vec{X: update[0], Y: update[1], Z: update[2]})).
		Msg("newton iteration for u,v,s did not converge")
	return s.intersection(surf, u, v, t, maxIterations, false), nil
}

func (s *Surface) intersection(surf int, u, v, t float64, iterations int, converged bool) Intersection {
	u = xmath.Clamp(u, lo, hi)
	v = xmath.Clamp(v, lo, hi)
	return Intersection{
		U:          u,
		V:          v,
		S:          t,
		Point:      s.Value(surf, u, v),
		Iterations: iterations,
		Converged:  converged,
	}
}
