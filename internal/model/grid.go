package model

import (
	"errors"
	"fmt"
)

// ShapeErr signals inconsistent array shapes in the input data.
var ShapeErr = errors.New("shape mismatch")

// Patch is a single surface patch sampled on a structured parametric grid.
// X[i][j] is the sample at parametric coordinates (U[i], V[j]).
type Patch struct {
	U []float64 `json:"u"`
	V []float64 `json:"v"`
	X [][]Point `json:"x"`
}

// Nu returns the number of samples in the u direction.
func (p Patch) Nu() int {
	return len(p.U)
}

// Nv returns the number of samples in the v direction.
func (p Patch) Nv() int {
	return len(p.V)
}

// Component returns the given coordinate of all samples, flattened row-major (i*Nv + j).
func (p Patch) Component(d Dimension) []float64 {
	nv := p.Nv()
	vv := make([]float64, p.Nu()*nv)
	for i, row := range p.X {
		for j, x := range row {
			vv[i*nv+j] = x[d]
		}
	}
	return vv
}

// Corners returns the samples at the four parametric corners,
// in the order (0,0), (0,Nv-1), (Nu-1,0), (Nu-1,Nv-1).
func (p Patch) Corners() [4]Point {
	nu, nv := p.Nu(), p.Nv()
	return [4]Point{
		p.X[0][0],
		p.X[0][nv-1],
		p.X[nu-1][0],
		p.X[nu-1][nv-1],
	}
}

// Validate checks that the sample grid matches the parametric coordinates.
func (p Patch) Validate() error {
	if p.Nu() == 0 || p.Nv() == 0 {
		return fmt.Errorf("empty parametric coordinates u=%d v=%d: %w", p.Nu(), p.Nv(), ShapeErr)
	}
	if len(p.X) != p.Nu() {
		return fmt.Errorf("expected %d rows of samples but got %d: %w", p.Nu(), len(p.X), ShapeErr)
	}
	for i, row := range p.X {
		if len(row) != p.Nv() {
			return fmt.Errorf("expected %d samples in row %d but got %d: %w", p.Nv(), i, len(row), ShapeErr)
		}
	}
	return nil
}

// Samples holds the sampled patches of all surfaces.
type Samples struct {
	Patches []Patch `json:"patches"`
}

// NewSamples creates a new sample set out of the given patches.
func NewSamples(patches ...Patch) Samples {
	return Samples{Patches: patches}
}

// Len returns the number of surfaces.
func (s Samples) Len() int {
	return len(s.Patches)
}

// Nu returns the number of u samples, shared by all patches.
func (s Samples) Nu() int {
	if len(s.Patches) == 0 {
		return 0
	}
	return s.Patches[0].Nu()
}

// Nv returns the number of v samples, shared by all patches.
func (s Samples) Nv() int {
	if len(s.Patches) == 0 {
		return 0
	}
	return s.Patches[0].Nv()
}

// Validate checks every patch and makes sure they all share the same grid size.
func (s Samples) Validate() error {
	if len(s.Patches) == 0 {
		return fmt.Errorf("no patches: %w", ShapeErr)
	}
	nu, nv := s.Nu(), s.Nv()
	for i, p := range s.Patches {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid patch %d: %w", i, err)
		}
		if p.Nu() != nu || p.Nv() != nv {
			return fmt.Errorf("patch %d has grid %dx%d instead of %dx%d: %w", i, p.Nu(), p.Nv(), nu, nv, ShapeErr)
		}
	}
	return nil
}

// Grid is a structured grid of points, addressed as [i][j].
type Grid [][]Point

// NewGrid allocates a zero grid of the given size.
func NewGrid(nu, nv int) Grid {
	g := make(Grid, nu)
	for i := range g {
		g[i] = make([]Point, nv)
	}
	return g
}

// Component extracts a single coordinate of the grid as a 2D array.
func (g Grid) Component(d Dimension) [][]float64 {
	cc := make([][]float64, len(g))
	for i, row := range g {
		cc[i] = make([]float64, len(row))
		for j, p := range row {
			cc[i][j] = p[d]
		}
	}
	return cc
}

// Set assigns the given 2D array to a single coordinate of the grid.
func (g Grid) Set(d Dimension, cc [][]float64) {
	for i, row := range cc {
		for j, c := range row {
			g[i][j][d] = c
		}
	}
}
