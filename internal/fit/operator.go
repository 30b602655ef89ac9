package fit

import (
	"fmt"

	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/spline"
	"gonum.org/v1/gonum/mat"
)

// step is the imaginary perturbation of the complex step derivatives.
const step = 1e-40

// NewOperator assembles the matrix mapping the control coefficients of the tensor spline
// to its values on the grid u x v. Row a*len(v)+b belongs to the sample (u[a], v[b]),
// column i*Nctlv+j to the control point (i,j).
// Every column is the complex step derivative of the grid values with respect to one coefficient.
func NewOperator(t spline.Tensor, u, v []float64) *mat.Dense {
	nctlu, nctlv := t.Nu(), t.Nv()
	op := mat.NewDense(len(u)*len(v), nctlu*nctlv, nil)

	ctl := make([][]complex128, nctlu)
	for i := range ctl {
		ctl[i] = make([]complex128, nctlv)
	}

	for i := 0; i < nctlu; i++ {
		for j := 0; j < nctlv; j++ {
			ctl[i][j] = complex(0, step)
			for r, val := range spline.Grid(t, u, v, ctl) {
				if d := imag(val) / step; d != 0 {
					op.Set(r, i*nctlv+j, d)
				}
			}
			ctl[i][j] = 0
		}
	}
	return op
}

// Operators assembles the basis operator of every sampled patch.
func Operators(t spline.Tensor, samples model.Samples) ([]*mat.Dense, error) {
	if err := samples.Validate(); err != nil {
		return nil, fmt.Errorf("could not assemble operators: %w", err)
	}
	ops := make([]*mat.Dense, samples.Len())
	for s, p := range samples.Patches {
		ops[s] = NewOperator(t, p.U, p.V)
	}
	return ops, nil
}
