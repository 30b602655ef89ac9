package fit

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/metrics"
	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/solver"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Problem is the least squares fit of the control points of all surfaces to their samples,
// subject to the geometric constraints.
type Problem struct {
	name        string
	layout      Layout
	operators   []*mat.Dense
	targets     [][model.Dim]*mat.VecDense
	constraints *Constraints
}

// NewProblem creates the fit problem for the given basis operators and samples.
func NewProblem(operators []*mat.Dense, samples model.Samples, constraints *Constraints, layout Layout) (*Problem, error) {
	if len(operators) != layout.Nsurf || samples.Len() != layout.Nsurf {
		return nil, fmt.Errorf("expected %d surfaces but got %d operators and %d patches: %w", layout.Nsurf, len(operators), samples.Len(), model.ShapeErr)
	}
	targets := make([][model.Dim]*mat.VecDense, layout.Nsurf)
	for s, p := range samples.Patches {
		r, c := operators[s].Dims()
		if r != p.Nu()*p.Nv() || c != layout.N() {
			return nil, fmt.Errorf("operator %d is %dx%d but expected %dx%d: %w", s, r, c, p.Nu()*p.Nv(), layout.N(), model.ShapeErr)
		}
		for d := 0; d < model.Dim; d++ {
			targets[s][d] = mat.NewVecDense(r, p.Component(model.Dimension(d)))
		}
	}
	return &Problem{
		name:        "lms",
		layout:      layout,
		operators:   operators,
		targets:     targets,
		constraints: constraints,
	}, nil
}

// residual returns J c - X for the (s,d) block.
func (p *Problem) residual(x []float64, s int, d model.Dimension) *mat.VecDense {
	r := mat.NewVecDense(p.targets[s][d].Len(), nil)
	r.MulVec(p.operators[s], mat.NewVecDense(p.layout.N(), p.layout.Block(x, s, d)))
	r.SubVec(r, p.targets[s][d])
	return r
}

// Residuals returns the pointwise distance between the fitted surface and the samples,
// per surface and in row-major sample order.
func (p *Problem) Residuals(x []float64) [][]float64 {
	rr := make([][]float64, p.layout.Nsurf)
	for s := range rr {
		var dd [model.Dim]*mat.VecDense
		for d := 0; d < model.Dim; d++ {
			dd[d] = p.residual(x, s, model.Dimension(d))
		}
		rr[s] = make([]float64, dd[0].Len())
		for i := range rr[s] {
			rr[s][i] = model.Point{dd[0].AtVec(i), dd[1].AtVec(i), dd[2].AtVec(i)}.Norm()
		}
	}
	return rr
}

// Objective returns the sum of squared distances between the fitted surfaces and the samples.
func (p *Problem) Objective(x []float64) float64 {
	var f float64
	for s := 0; s < p.layout.Nsurf; s++ {
		for d := 0; d < model.Dim; d++ {
			r := p.residual(x, s, model.Dimension(d))
			f += mat.Dot(r, r)
		}
	}
	return f
}

// ObjCon evaluates the objective and the constraints.
func (p *Problem) ObjCon(x []float64) (float64, []float64, bool) {
	metrics.Observer.Increment(p.name, "objcon")
	return p.Objective(x), p.constraints.Eval(x), false
}

// Sens evaluates the objective gradient and the constraint jacobian.
func (p *Problem) Sens(x []float64) ([]float64, *mat.Dense, bool) {
	metrics.Observer.Increment(p.name, "sens")
	grad := make([]float64, len(x))
	for s := 0; s < p.layout.Nsurf; s++ {
		for d := 0; d < model.Dim; d++ {
			dim := model.Dimension(d)
			g := mat.NewVecDense(p.layout.N(), p.layout.Block(grad, s, dim))
			g.MulVec(p.operators[s].T(), p.residual(x, s, dim))
			g.ScaleVec(2, g)
		}
	}
	return grad, p.constraints.Jacobian(x), false
}

// Solver creates the optimization problem starting at x0,
// with every variable allowed to move by bound around its start value.
func (p *Problem) Solver(x0 []float64, bound float64) solver.Problem {
	lower := make([]float64, len(x0))
	upper := make([]float64, len(x0))
	copy(lower, x0)
	copy(upper, x0)
	floats.AddConst(-bound, lower)
	floats.AddConst(bound, upper)
	return solver.Problem{
		Name:        p.name,
		ObjCon:      p.ObjCon,
		Sens:        p.Sens,
		X0:          append([]float64(nil), x0...),
		Lower:       lower,
		Upper:       upper,
		Constraints: p.constraints.Bounds,
	}
}
