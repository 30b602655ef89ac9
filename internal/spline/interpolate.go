package spline

import (
	"fmt"

	xmath "github.com/drakos74/free-spline/internal/math"
	"github.com/drakos74/free-spline/internal/model"
	"gonum.org/v1/gonum/mat"
)

// InterpolationKnots places the knots for interpolating at the sites x with a spline of the given order.
// The end knots have multiplicity order at the first and last site, the interior knots sit on the
// data sites for even orders and between them for odd orders.
func InterpolationKnots(x []float64, order int) Knots {
	n := len(x)
	t := make(Knots, n+order)
	for i := 0; i < order; i++ {
		t[i] = x[0]
		t[n+i] = x[n-1]
	}
	half := order / 2
	for i := 0; i < n-order; i++ {
		if order%2 == 0 {
			t[order+i] = x[i+half]
		} else {
			t[order+i] = 0.5 * (x[i+half] + x[i+half+1])
		}
	}
	return t
}

// collocation builds the matrix of the basis functions evaluated at the sites, a[r][c] = N_c(x_r).
func collocation(t Knots, order int, x []float64) *mat.Dense {
	n := t.Count(order)
	a := mat.NewDense(len(x), n, nil)
	for r, xr := range x {
		first, w := weights(t, order, xr, 0)
		for k, wk := range w {
			a.Set(r, first+k, wk)
		}
	}
	return a
}

// Interpolate computes the tensor spline of the given orders passing through the samples,
// x[i][j] = S(u[i], v[j]).
func Interpolate(u, v []float64, x [][]float64, orderU, orderV int) (Tensor, [][]float64, error) {
	if len(u) < orderU || len(v) < orderV {
		return Tensor{}, nil, fmt.Errorf("need at least %dx%d samples for interpolation but got %dx%d: %w", orderU, orderV, len(u), len(v), model.ShapeErr)
	}
	if len(x) != len(u) {
		return Tensor{}, nil, fmt.Errorf("expected %d rows of samples but got %d: %w", len(u), len(x), model.ShapeErr)
	}

	t := NewTensor(orderU, orderV, InterpolationKnots(u, orderU), InterpolationKnots(v, orderV))

	b := mat.NewDense(len(u), len(v), nil)
	for i, row := range x {
		if len(row) != len(v) {
			return Tensor{}, nil, fmt.Errorf("expected %d samples in row %d but got %d: %w", len(v), i, len(row), model.ShapeErr)
		}
		b.SetRow(i, row)
	}

	// Au C Avᵀ = X, first along u then along v
	y, err := xmath.LeastSquares(collocation(t.KnotsU, orderU, u), b)
	if err != nil {
		return Tensor{}, nil, fmt.Errorf("could not interpolate along u: %w", err)
	}
	ct, err := xmath.LeastSquares(collocation(t.KnotsV, orderV, v), y.T())
	if err != nil {
		return Tensor{}, nil, fmt.Errorf("could not interpolate along v: %w", err)
	}

	coef := make([][]float64, len(u))
	for i := range coef {
		coef[i] = mat.Col(nil, i, ct)
	}
	return t, coef, nil
}
