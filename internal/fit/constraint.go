package fit

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/solver"
	"github.com/drakos74/free-spline/internal/spline"
	"gonum.org/v1/gonum/mat"
)

// Kind is the geometric meaning of a constraint row.
type Kind int

const (
	// Corner pins a corner control point to the measured corner sample.
	Corner Kind = iota
	// Edge matches the LE and TE control points of the upper and lower surfaces.
	Edge
	// LE keeps the control points around the leading edge in one plane.
	LE
)

var kinds = map[Kind]string{
	Corner: "corner",
	Edge:   "edge",
	LE:     "le",
}

func (k Kind) String() string {
	if s, ok := kinds[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Constraints holds the constraint rows of the fit, ordered corner, edge, LE.
// The linear rows are fully described by B, the LE rows of B are zero
// and get evaluated on the design vector instead.
type Constraints struct {
	B       *mat.Dense
	Bounds  []solver.Bound
	Corners int
	Edges   int
	LE      int
	layout  Layout
}

// NewConstraints assembles the constraints for the given layout and samples.
// A single surface only gets the corner rows. The seam rows always couple surfaces 0 and 1.
func NewConstraints(l Layout, samples model.Samples) *Constraints {
	c := &Constraints{
		Corners: 4 * l.Nsurf * model.Dim,
		layout:  l,
	}
	if l.Nsurf > 1 {
		c.Edges = 2 * l.Nctlv * model.Dim
		c.LE = l.Nctlv * model.Dim
	}
	c.B = mat.NewDense(c.Len(), l.Len(), nil)
	c.Bounds = make([]solver.Bound, 0, c.Len())

	n := l.N()
	row := 0
	for s := 0; s < l.Nsurf; s++ {
		corners := samples.Patches[s].Corners()
		for d := 0; d < model.Dim; d++ {
			dim := model.Dimension(d)
			for k, flat := range []int{0, l.Nctlv - 1, n - l.Nctlv, n - 1} {
				c.B.Set(row, l.Offset(s, dim)+flat, 1)
				c.Bounds = append(c.Bounds, solver.Equal(corners[k][d]))
				row++
			}
		}
	}

	if l.Nsurf == 1 {
		return c
	}

	for d := 0; d < model.Dim; d++ {
		dim := model.Dimension(d)
		for j := 0; j < l.Nctlv; j++ {
			// LE
			c.B.Set(row, l.Index(0, dim, 0, j), 1)
			c.B.Set(row, l.Index(1, dim, l.Nctlu-1, j), -1)
			// TE
			c.B.Set(row+1, l.Index(0, dim, l.Nctlu-1, j), 1)
			c.B.Set(row+1, l.Index(1, dim, 0, j), -1)
			c.Bounds = append(c.Bounds, solver.Equal(0), solver.Equal(0))
			row += 2
		}
	}

	for i := 0; i < c.LE; i++ {
		c.Bounds = append(c.Bounds, solver.Equal(0))
	}
	return c
}

// Len returns the number of constraint rows.
func (c *Constraints) Len() int {
	return c.Corners + c.Edges + c.LE
}

// Linear returns the number of linear rows, these come first.
func (c *Constraints) Linear() int {
	return c.Corners + c.Edges
}

// LEOffset returns the index of the first LE row.
func (c *Constraints) LEOffset() int {
	return c.Linear()
}

// Kind returns the kind of the given row.
func (c *Constraints) Kind(row int) Kind {
	switch {
	case row < c.Corners:
		return Corner
	case row < c.Linear():
		return Edge
	}
	return LE
}

// Eval evaluates all constraint rows at x.
func (c *Constraints) Eval(x []float64) []float64 {
	con := mat.NewVecDense(c.Len(), nil)
	con.MulVec(c.B, mat.NewVecDense(len(x), x))
	vv := con.RawVector().Data
	for j := 0; j < c.LE/model.Dim; j++ {
		a := leAreas(c.layout, x, j)
		copy(vv[c.LEOffset()+j*model.Dim:], a[:])
	}
	return vv
}

// Jacobian returns the jacobian of the constraints at x.
// The LE rows are obtained by complex step perturbation of every design variable.
func (c *Constraints) Jacobian(x []float64) *mat.Dense {
	jac := mat.DenseCopyOf(c.B)
	if c.LE == 0 {
		return jac
	}

	xc := make([]complex128, len(x))
	for i, xi := range x {
		xc[i] = complex(xi, 0)
	}
	nle := c.LE / model.Dim
	for i := range xc {
		xc[i] += complex(0, step)
		for j := 0; j < nle; j++ {
			a := leAreas(c.layout, xc, j)
			for k, ak := range a {
				if d := imag(ak) / step; d != 0 {
					jac.Set(c.LEOffset()+j*model.Dim+k, i, d)
				}
			}
		}
		xc[i] -= complex(0, step)
	}
	return jac
}

// leAreas returns twice the signed areas of the triangle of the LE control point of the upper surface
// and its neighbours on both surfaces, projected on the xy, yz and xz planes.
func leAreas[T spline.Scalar](l Layout, x []T, j int) [model.Dim]T {
	var a, b, c [model.Dim]T
	for d := 0; d < model.Dim; d++ {
		dim := model.Dimension(d)
		a[d] = x[l.Index(0, dim, 0, j)]
		b[d] = x[l.Index(0, dim, 1, j)]
		c[d] = x[l.Index(1, dim, l.Nctlu-2, j)]
	}
	area := func(p, q int) T {
		return a[p]*c[q] - a[p]*b[q] + b[p]*a[q] - b[p]*c[q] + c[p]*b[q] - c[p]*a[q]
	}
	return [model.Dim]T{
		area(0, 1),
		area(1, 2),
		area(0, 2),
	}
}
