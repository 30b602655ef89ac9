package fit

import (
	"fmt"

	xmath "github.com/drakos74/free-spline/internal/math"
	"github.com/drakos74/free-spline/internal/model"
	"gonum.org/v1/gonum/mat"
)

// independence is the relative tolerance for dropping redundant constraint rows.
const independence = 1e-10

// Seed computes the starting design vector for the fit: the least squares control points
// that satisfy the linear (corner and edge) constraints exactly.
func Seed(operators []*mat.Dense, samples model.Samples, c *Constraints, l Layout) ([]float64, error) {
	problem, err := NewProblem(operators, samples, c, l)
	if err != nil {
		return nil, fmt.Errorf("could not seed fit: %w", err)
	}

	n := l.N()
	ndv := l.Len()
	h := mat.NewDense(ndv, ndv, nil)
	g := make([]float64, ndv)
	for s := 0; s < l.Nsurf; s++ {
		var jtj mat.Dense
		jtj.Mul(operators[s].T(), operators[s])
		jtj.Scale(2, &jtj)
		for d := 0; d < model.Dim; d++ {
			dim := model.Dimension(d)
			o := l.Offset(s, dim)
			h.Slice(o, o+n, o, o+n).(*mat.Dense).Copy(&jtj)
			jtx := mat.NewVecDense(n, l.Block(g, s, dim))
			jtx.MulVec(operators[s].T(), problem.targets[s][d])
			jtx.ScaleVec(2, jtx)
		}
	}

	linear := c.B.Slice(0, c.Linear(), 0, ndv)
	rows := xmath.IndependentRows(linear, independence)
	var a mat.Matrix
	b := make([]float64, len(rows))
	if len(rows) > 0 {
		ad := mat.NewDense(len(rows), ndv, nil)
		for k, r := range rows {
			ad.SetRow(k, mat.Row(nil, r, linear))
			b[k] = c.Bounds[r].Lower
		}
		a = ad
	}

	x, _, err := xmath.SolveKKT(h, g, a, b)
	if err != nil {
		return nil, fmt.Errorf("could not solve seed system: %w", err)
	}
	return x, nil
}
