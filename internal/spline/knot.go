package spline

import (
	"fmt"

	xmath "github.com/drakos74/free-spline/internal/math"
)

// Distribution defines how the interior knots are spread over [0,1].
type Distribution int

const (
	// Uniform spaces the interior knots equally.
	Uniform Distribution = iota
	// Cosine clusters the interior knots towards both ends.
	Cosine
)

func (d Distribution) String() string {
	switch d {
	case Uniform:
		return "uniform"
	case Cosine:
		return "cosine"
	}
	return fmt.Sprintf("distribution(%d)", int(d))
}

// Knots is a non-decreasing knot vector.
type Knots []float64

// Clamped creates the knot vector of a spline with nctl control points of the given order,
// with order-fold knots at 0 and 1 and the interior knots spread according to dist.
func Clamped(nctl, order int, dist Distribution) Knots {
	if nctl < order {
		panic(fmt.Sprintf("need at least %d control points for order %d but got %d", order, order, nctl))
	}

	count := nctl - order + 2
	var interior []float64
	switch dist {
	case Cosine:
		interior = xmath.Cosspace(count)
	default:
		interior = xmath.Linspace(0, 1, count)
	}

	t := make(Knots, nctl+order)
	copy(t[order-1:nctl+1], interior)
	for i := nctl; i < len(t); i++ {
		t[i] = 1
	}
	return t
}

// Count returns the number of basis functions (control points) for the given order.
func (t Knots) Count(order int) int {
	return len(t) - order
}

// Domain returns the parametric interval the spline of the given order is defined on.
func (t Knots) Domain(order int) (lo, hi float64) {
	return t[order-1], t[t.Count(order)]
}

// Span finds the index s of the knot span with t[s] <= u < t[s+1] for a spline of the given order.
// Parameters outside the domain are assigned to the first or last span,
// so that evaluation extrapolates the end polynomial pieces.
// (algorithm 2.1 from The NURBS book, Piegl & Tiller)
func (t Knots) Span(order int, u float64) int {
	p := order - 1
	n := t.Count(order)

	if u >= t[n] {
		// last non-degenerate span
		s := n - 1
		for s > p && t[s] == t[n] {
			s--
		}
		return s
	}
	if u < t[p] {
		return p
	}

	low, high := p, n
	mid := (low + high) / 2
	for u < t[mid] || u >= t[mid+1] {
		if u < t[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// Validate checks the vector is non-decreasing and long enough for the given order.
func (t Knots) Validate(order int) error {
	if order < 1 {
		return fmt.Errorf("invalid order %d", order)
	}
	if len(t) < 2*order {
		return fmt.Errorf("knot vector of length %d is too short for order %d", len(t), order)
	}
	for i := 1; i < len(t); i++ {
		if t[i] < t[i-1] {
			return fmt.Errorf("knot vector decreases at %d: %f < %f", i, t[i], t[i-1])
		}
	}
	return nil
}
