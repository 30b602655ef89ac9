package math

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SingularErr is returned when a linear system cannot be solved.
var SingularErr = errors.New("singular system")

// LeastSquares solves min ||a x - b|| for every column of b.
// a must have at least as many rows as columns.
func LeastSquares(a mat.Matrix, b mat.Matrix) (*mat.Dense, error) {
	r, c := a.Dims()
	if r < c {
		return nil, fmt.Errorf("under-determined system %dx%d: %w", r, c, SingularErr)
	}
	_, bc := b.Dims()
	x := mat.NewDense(c, bc, nil)

	qr := new(mat.QR)
	qr.Factorize(a)

	err := qr.SolveTo(x, false, b)
	if err != nil {
		return nil, fmt.Errorf("could not solve least squares: %v: %w", err, SingularErr)
	}
	return x, nil
}

// IndependentRows returns the indices of a maximal set of linearly independent rows of a,
// scanning the rows in order. Rows whose component orthogonal to the rows already kept
// is smaller than tol (relative to the row norm) are skipped.
func IndependentRows(a mat.Matrix, tol float64) []int {
	r, c := a.Dims()
	basis := make([][]float64, 0, r)
	kept := make([]int, 0, r)
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, a)
		n0 := floats.Norm(row, 2)
		if n0 == 0 {
			continue
		}
		// modified gram-schmidt against the orthonormal rows found so far
		for _, q := range basis {
			floats.AddScaled(row, -floats.Dot(row, q), q)
		}
		n := floats.Norm(row, 2)
		if n <= tol*n0 {
			continue
		}
		floats.Scale(1/n, row)
		basis = append(basis, row)
		kept = append(kept, i)
		if len(kept) == c {
			break
		}
	}
	return kept
}

// SolveKKT solves the equality constrained quadratic program
//
//	min 1/2 xᵀ h x - gᵀ x  subject to  a x = b
//
// through its KKT system. It returns the solution and the lagrange multipliers.
// The rows of a must be linearly independent (see IndependentRows).
func SolveKKT(h mat.Matrix, g []float64, a mat.Matrix, b []float64) (x, lambda []float64, err error) {
	n, _ := h.Dims()
	m := 0
	if a != nil {
		m, _ = a.Dims()
	}

	kkt := mat.NewDense(n+m, n+m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			kkt.Set(i, j, h.At(i, j))
		}
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := a.At(i, j)
			if v == 0 {
				continue
			}
			kkt.Set(n+i, j, v)
			kkt.Set(j, n+i, v)
		}
	}

	rhs := mat.NewVecDense(n+m, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, g[i])
	}
	for i := 0; i < m; i++ {
		rhs.SetVec(n+i, b[i])
	}

	sol := mat.NewVecDense(n+m, nil)
	if err := sol.SolveVec(kkt, rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, nil, fmt.Errorf("could not solve kkt system of size %d: %v: %w", n+m, err, SingularErr)
		}
	}

	x = make([]float64, n)
	lambda = make([]float64, m)
	for i := range x {
		x[i] = sol.AtVec(i)
	}
	for i := range lambda {
		lambda[i] = sol.AtVec(n + i)
	}
	return x, lambda, nil
}

// Solve3 solves the 3x3 system a x = b.
func Solve3(a [3][3]float64, b [3]float64) ([3]float64, error) {
	m := mat.NewDense(3, 3, []float64{
		a[0][0], a[0][1], a[0][2],
		a[1][0], a[1][1], a[1][2],
		a[2][0], a[2][1], a[2][2],
	})
	var lu mat.LU
	lu.Factorize(m)
	if lu.Det() == 0 {
		return [3]float64{}, fmt.Errorf("zero determinant: %w", SingularErr)
	}
	x := mat.NewVecDense(3, nil)
	if err := lu.SolveVecTo(x, false, mat.NewVecDense(3, b[:])); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return [3]float64{}, fmt.Errorf("could not solve 3x3 system: %v: %w", err, SingularErr)
		}
	}
	return [3]float64{x.AtVec(0), x.AtVec(1), x.AtVec(2)}, nil
}
