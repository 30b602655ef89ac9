package fit

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/spline"
)

// Layout maps control points of all surfaces onto the flat design vector.
// The coordinate d of control point (i,j) of surface s lives at
//
//	s*3*N + d*N + i*Nctlv + j,  N = Nctlu*Nctlv
type Layout struct {
	Nsurf int `json:"nsurf"`
	Nctlu int `json:"nctlu"`
	Nctlv int `json:"nctlv"`
}

// NewLayout creates a new design vector layout.
func NewLayout(nsurf, nctlu, nctlv int) Layout {
	return Layout{
		Nsurf: nsurf,
		Nctlu: nctlu,
		Nctlv: nctlv,
	}
}

// N returns the number of control points of a single surface.
func (l Layout) N() int {
	return l.Nctlu * l.Nctlv
}

// Len returns the length of the design vector.
func (l Layout) Len() int {
	return l.Nsurf * model.Dim * l.N()
}

// Index returns the position of the d coordinate of control point (i,j) of surface s.
func (l Layout) Index(s int, d model.Dimension, i, j int) int {
	return l.Offset(s, d) + i*l.Nctlv + j
}

// Offset returns the start of the (s,d) block.
func (l Layout) Offset(s int, d model.Dimension) int {
	return s*model.Dim*l.N() + int(d)*l.N()
}

// Block returns the slice of the design vector holding coordinate d of surface s.
// The slice shares memory with x.
func (l Layout) Block(x []float64, s int, d model.Dimension) []float64 {
	o := l.Offset(s, d)
	return x[o : o+l.N()]
}

// Pack flattens the control grids into a design vector.
func (l Layout) Pack(grids []model.Grid) ([]float64, error) {
	if len(grids) != l.Nsurf {
		return nil, fmt.Errorf("expected %d control grids but got %d: %w", l.Nsurf, len(grids), model.ShapeErr)
	}
	x := make([]float64, l.Len())
	for s, g := range grids {
		if len(g) != l.Nctlu {
			return nil, fmt.Errorf("control grid %d has %d rows instead of %d: %w", s, len(g), l.Nctlu, model.ShapeErr)
		}
		for i, row := range g {
			if len(row) != l.Nctlv {
				return nil, fmt.Errorf("control grid %d row %d has %d points instead of %d: %w", s, i, len(row), l.Nctlv, model.ShapeErr)
			}
			for j, p := range row {
				for d := 0; d < model.Dim; d++ {
					x[l.Index(s, model.Dimension(d), i, j)] = p[d]
				}
			}
		}
	}
	return x, nil
}

// Unpack reshapes the design vector into one control grid per surface.
func (l Layout) Unpack(x []float64) []model.Grid {
	grids := make([]model.Grid, l.Nsurf)
	for s := range grids {
		g := model.NewGrid(l.Nctlu, l.Nctlv)
		for d := 0; d < model.Dim; d++ {
			g.Set(model.Dimension(d), Unpack(l, x, s, model.Dimension(d)))
		}
		grids[s] = g
	}
	return grids
}

// Unpack reshapes the (s,d) block of the design vector into an Nctlu x Nctlv coefficient array.
// It works for real as well as complex-step perturbed design vectors.
func Unpack[T spline.Scalar](l Layout, x []T, s int, d model.Dimension) [][]T {
	o := l.Offset(s, d)
	cc := make([][]T, l.Nctlu)
	for i := range cc {
		cc[i] = make([]T, l.Nctlv)
		copy(cc[i], x[o+i*l.Nctlv:o+(i+1)*l.Nctlv])
	}
	return cc
}
