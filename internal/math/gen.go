package math

import (
	"math"

	"github.com/drakos74/free-spline/internal/model"
	"gonum.org/v1/gonum/floats"
)

// Linspace returns n equally spaced values from l to u inclusive.
func Linspace(l, u float64, n int) []float64 {
	if n == 1 {
		return []float64{l}
	}
	return floats.Span(make([]float64, n), l, u)
}

// Cosspace returns n values in [0,1] clustered towards both ends,
// 0.5*(1-cos(t)) for t equally spaced in [0,π].
func Cosspace(n int) []float64 {
	xx := Linspace(0, math.Pi, n)
	for i, x := range xx {
		xx[i] = 0.5 * (1 - math.Cos(x))
	}
	// pin the ends, cos(π) is not exactly -1 after the product
	xx[0] = 0
	xx[n-1] = 1
	return xx
}

// Wing describes a straight tapered wing with a symmetric 4-digit airfoil section.
// The surface is split into an upper patch running LE -> TE
// and a lower patch running TE -> LE, sharing both edges.
type Wing struct {
	Chord     float64 `json:"chord"`
	Span      float64 `json:"span"`
	Thickness float64 `json:"thickness"`
	Taper     float64 `json:"taper"`
	Sweep     float64 `json:"sweep"`
}

// DefaultWing is a unit chord NACA 0012 wing of span 4.
func DefaultWing() Wing {
	return Wing{
		Chord:     1,
		Span:      4,
		Thickness: 0.12,
		Taper:     0.5,
		Sweep:     0.3,
	}
}

// thickness is the closed trailing edge NACA half thickness, written in terms of s = sqrt(x/c).
func (w Wing) thickness(s float64) float64 {
	s2 := s * s
	s4 := s2 * s2
	return 5 * w.Thickness * (0.2969*s - 0.1260*s2 - 0.3516*s4 + 0.2843*s4*s2 - 0.1036*s4*s4)
}

func (w Wing) point(s, v, sign float64) model.Point {
	chord := w.Chord * (1 - w.Taper*v)
	le := w.Sweep * w.Span * v
	return model.Point{
		le + chord*s*s,
		sign * chord * w.thickness(s),
		w.Span * v,
	}
}

// Samples samples both patches of the wing on an nu x nv parametric grid.
// The u coordinates are equally spaced, the surface itself clusters points at the LE.
func (w Wing) Samples(nu, nv int) model.Samples {
	u := Linspace(0, 1, nu)
	v := Linspace(0, 1, nv)
	upper := model.NewGrid(nu, nv)
	lower := model.NewGrid(nu, nv)
	for i := range u {
		for j := range v {
			upper[i][j] = w.point(u[i], v[j], 1)
			lower[i][j] = w.point(1-u[i], v[j], -1)
		}
	}
	return model.NewSamples(
		model.Patch{U: u, V: append([]float64(nil), v...), X: upper},
		model.Patch{U: append([]float64(nil), u...), V: append([]float64(nil), v...), X: lower},
	)
}

// Lens returns a two patch lens shaped surface with quadratic sections,
// x = s², y = ±h s(1-s), z = span v, that any cubic tensor spline represents exactly.
// Like the wing, the upper patch runs LE -> TE and the lower one TE -> LE.
func Lens(h, span float64, nu, nv int) model.Samples {
	u := Linspace(0, 1, nu)
	v := Linspace(0, 1, nv)
	upper := model.NewGrid(nu, nv)
	lower := model.NewGrid(nu, nv)
	for i := range u {
		for j := range v {
			s := u[i]
			upper[i][j] = model.Point{s * s, h * s * (1 - s), span * v[j]}
			s = 1 - u[i]
			lower[i][j] = model.Point{s * s, -h * s * (1 - s), span * v[j]}
		}
	}
	return model.NewSamples(
		model.Patch{U: u, V: v, X: upper},
		model.Patch{U: append([]float64(nil), u...), V: append([]float64(nil), v...), X: lower},
	)
}

// Plane returns a single planar patch X(u,v) = origin + u*du + v*dv.
func Plane(origin, du, dv model.Point, u, v []float64) model.Patch {
	x := model.NewGrid(len(u), len(v))
	for i := range u {
		for j := range v {
			for d := 0; d < model.Dim; d++ {
				x[i][j][d] = origin[d] + u[i]*du[d] + v[j]*dv[d]
			}
		}
	}
	return model.Patch{U: u, V: v, X: x}
}
