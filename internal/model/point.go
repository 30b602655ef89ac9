package model

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Dim is the number of spatial dimensions of a surface point.
const Dim = 3

// Dimension names a spatial axis.
type Dimension int

const (
	// X is the chordwise axis.
	X Dimension = iota
	// Y is the thickness axis.
	Y
	// Z is the spanwise axis.
	Z
)

var dimensions = map[Dimension]string{
	X: "x",
	Y: "y",
	Z: "z",
}

func (d Dimension) String() string {
	if s, ok := dimensions[d]; ok {
		return s
	}
	return fmt.Sprintf("dim(%d)", int(d))
}

// Point is a point in 3D space.
type Point [Dim]float64

// Vec returns the point as a gonum vector.
func (p Point) Vec() r3.Vec {
	return r3.Vec{X: p[X], Y: p[Y], Z: p[Z]}
}

// FromVec creates a point from the given gonum vector.
func FromVec(v r3.Vec) Point {
	return Point{v.X, v.Y, v.Z}
}

// Sub returns the componentwise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{p[X] - q[X], p[Y] - q[Y], p[Z] - q[Z]}
}

// Norm returns the euclidean length of the point seen as a vector.
func (p Point) Norm() float64 {
	return r3.Norm(p.Vec())
}

func (p Point) String() string {
	return fmt.Sprintf("(%f, %f, %f)", p[X], p[Y], p[Z])
}
