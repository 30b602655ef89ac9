package spline

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/model"
)

// Scalar is the coefficient type a spline can be evaluated with.
// complex128 coefficients carry complex-step perturbations through the evaluation.
type Scalar interface {
	~float64 | ~complex128
}

// lift converts a real basis weight to the coefficient type.
func lift[T Scalar](f float64) T {
	var t T
	switch p := any(&t).(type) {
	case *float64:
		*p = f
	case *complex128:
		*p = complex(f, 0)
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", t))
	}
	return t
}

// Tensor is a tensor product B-spline space, defined by the order and knots in each direction.
type Tensor struct {
	OrderU int   `json:"order_u"`
	OrderV int   `json:"order_v"`
	KnotsU Knots `json:"knots_u"`
	KnotsV Knots `json:"knots_v"`
}

// NewTensor creates a new tensor product space.
func NewTensor(orderU, orderV int, knotsU, knotsV Knots) Tensor {
	return Tensor{
		OrderU: orderU,
		OrderV: orderV,
		KnotsU: knotsU,
		KnotsV: knotsV,
	}
}

// Nu returns the number of control points in the u direction.
func (t Tensor) Nu() int {
	return t.KnotsU.Count(t.OrderU)
}

// Nv returns the number of control points in the v direction.
func (t Tensor) Nv() int {
	return t.KnotsV.Count(t.OrderV)
}

// Validate checks the knot vectors against the orders.
func (t Tensor) Validate() error {
	if err := t.KnotsU.Validate(t.OrderU); err != nil {
		return fmt.Errorf("invalid u knots: %w", err)
	}
	if err := t.KnotsV.Validate(t.OrderV); err != nil {
		return fmt.Errorf("invalid v knots: %w", err)
	}
	return nil
}

// weights returns the basis function weights for the du-th derivative at u,
// together with the index of the first control point they apply to.
func weights(t Knots, order int, u float64, du int) (int, []float64) {
	span := t.Span(order, u)
	first := span - order + 1
	if du == 0 {
		return first, t.Basis(order, span, u)
	}
	if du >= order {
		return first, make([]float64, order)
	}
	return first, t.Derivatives(order, span, u, du)[du]
}

// Evaluate evaluates the (du,dv) partial derivative of the spline with coefficients coef at (u,v).
// coef is addressed as [i][j] with i along u.
func Evaluate[T Scalar](t Tensor, u, v float64, du, dv int, coef [][]T) T {
	iu, wu := weights(t.KnotsU, t.OrderU, u, du)
	iv, wv := weights(t.KnotsV, t.OrderV, v, dv)

	var sum T
	for a, nu := range wu {
		if nu == 0 {
			continue
		}
		row := coef[iu+a]
		var s T
		for b, nv := range wv {
			s += lift[T](nv) * row[iv+b]
		}
		sum += lift[T](nu) * s
	}
	return sum
}

// Value evaluates the (du,dv) partial derivative at (u,v).
func (t Tensor) Value(u, v float64, du, dv int, coef [][]float64) float64 {
	return Evaluate(t, u, v, du, dv, coef)
}

// ValueV evaluates the spline at the points (u[i], v[i]).
func (t Tensor) ValueV(u, v []float64, du, dv int, coef [][]float64) ([]float64, error) {
	if len(u) != len(v) {
		return nil, fmt.Errorf("u and v must be the same length %d vs %d: %w", len(u), len(v), model.ShapeErr)
	}
	vv := make([]float64, len(u))
	for i := range u {
		vv[i] = Evaluate(t, u[i], v[i], du, dv, coef)
	}
	return vv, nil
}

// ValueM evaluates the spline at the points (u[i][j], v[i][j]).
func (t Tensor) ValueM(u, v [][]float64, du, dv int, coef [][]float64) ([][]float64, error) {
	if len(u) != len(v) {
		return nil, fmt.Errorf("u and v must be the same shape %d vs %d rows: %w", len(u), len(v), model.ShapeErr)
	}
	vv := make([][]float64, len(u))
	for i := range u {
		row, err := t.ValueV(u[i], v[i], du, dv, coef)
		if err != nil {
			return nil, fmt.Errorf("invalid row %d: %w", i, err)
		}
		vv[i] = row
	}
	return vv, nil
}

// Grid evaluates the spline on the tensor grid u x v, returning a row-major vector (i*len(v) + j).
func Grid[T Scalar](t Tensor, u, v []float64, coef [][]T) []T {
	vv := make([]T, len(u)*len(v))
	for i := range u {
		for j := range v {
			vv[i*len(v)+j] = Evaluate(t, u[i], v[j], 0, 0, coef)
		}
	}
	return vv
}
