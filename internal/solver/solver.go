package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// InfeasibleErr signals an ill-posed problem definition.
var InfeasibleErr = errors.New("infeasible problem")

// Bound is an interval Lower <= value <= Upper. Infinite ends are allowed.
type Bound struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Equal creates an equality bound.
func Equal(v float64) Bound {
	return Bound{Lower: v, Upper: v}
}

// Free creates an unbounded interval.
func Free() Bound {
	return Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Equality checks if the bound pins the value.
func (b Bound) Equality() bool {
	return b.Lower == b.Upper
}

// Violation returns by how much v lies outside of the bound.
func (b Bound) Violation(v float64) float64 {
	if v < b.Lower {
		return b.Lower - v
	}
	if v > b.Upper {
		return v - b.Upper
	}
	return 0
}

// ObjCon evaluates the objective and the constraint vector at x.
// fail signals that x could not be evaluated.
type ObjCon func(x []float64) (f float64, con []float64, fail bool)

// Sens evaluates the objective gradient and the constraint jacobian at x.
type Sens func(x []float64) (grad []float64, jac *mat.Dense, fail bool)

// Problem is a nonlinear program
//
//	min f(x)  subject to  Constraints[i].Lower <= c_i(x) <= Constraints[i].Upper,  Lower <= x <= Upper
type Problem struct {
	Name        string
	ObjCon      ObjCon
	Sens        Sens
	X0          []float64
	Lower       []float64
	Upper       []float64
	Constraints []Bound
}

// Validate checks the problem dimensions.
func (p Problem) Validate() error {
	if p.ObjCon == nil || p.Sens == nil {
		return fmt.Errorf("problem '%s' is missing callbacks: %w", p.Name, InfeasibleErr)
	}
	n := len(p.X0)
	if n == 0 {
		return fmt.Errorf("problem '%s' has no variables: %w", p.Name, InfeasibleErr)
	}
	if p.Lower != nil && len(p.Lower) != n {
		return fmt.Errorf("expected %d lower bounds but got %d: %w", n, len(p.Lower), InfeasibleErr)
	}
	if p.Upper != nil && len(p.Upper) != n {
		return fmt.Errorf("expected %d upper bounds but got %d: %w", n, len(p.Upper), InfeasibleErr)
	}
	for i := 0; i < n; i++ {
		if p.Lower != nil && p.Upper != nil && p.Lower[i] > p.Upper[i] {
			return fmt.Errorf("variable %d has empty bounds [%f,%f]: %w", i, p.Lower[i], p.Upper[i], InfeasibleErr)
		}
	}
	for i, b := range p.Constraints {
		if b.Lower > b.Upper {
			return fmt.Errorf("constraint %d has empty bounds [%f,%f]: %w", i, b.Lower, b.Upper, InfeasibleErr)
		}
	}
	return nil
}

// variable returns the bound of the i-th variable.
func (p Problem) variable(i int) Bound {
	b := Free()
	if p.Lower != nil {
		b.Lower = p.Lower[i]
	}
	if p.Upper != nil {
		b.Upper = p.Upper[i]
	}
	return b
}

// Options tune the solver.
type Options struct {
	MajorIterations      int     `json:"major_iterations"`
	MinorIterations      int     `json:"minor_iterations"`
	OptimalityTolerance  float64 `json:"optimality_tolerance"`
	FeasibilityTolerance float64 `json:"feasibility_tolerance"`
}

// DefaultOptions returns the options used for surface fitting.
func DefaultOptions() Options {
	return Options{
		MajorIterations:      150,
		MinorIterations:      500,
		OptimalityTolerance:  1e-6,
		FeasibilityTolerance: 1e-9,
	}
}

// Status is the exit condition of the solver.
type Status int

const (
	// Optimal means both tolerances were met.
	Optimal Status = iota
	// IterationLimit means the major iteration limit was reached first.
	IterationLimit
	// Failure means the evaluation of the problem failed.
	Failure
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case IterationLimit:
		return "iteration-limit"
	case Failure:
		return "failure"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the outcome of a minimization.
type Result struct {
	X             []float64
	F             float64
	History       []float64
	Iterations    int
	Evaluations   int
	Infeasibility float64
	Status        Status
}

// Solver minimizes a nonlinear program.
type Solver interface {
	Minimize(p Problem, opts Options) (*Result, error)
}
