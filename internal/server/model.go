package server

import (
	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/surface"
)

// ValueRequest asks for the points and jacobians of a surface at (U[i], V[i]).
type ValueRequest struct {
	Surface int       `json:"surface"`
	U       []float64 `json:"u"`
	V       []float64 `json:"v"`
}

type ValueResponse struct {
	Points    []model.Point           `json:"points"`
	Jacobians [][model.Dim][2]float64 `json:"jacobians"`
}

// IntersectRequest asks for the intersection of the ray origin + s*dir with a surface.
type IntersectRequest struct {
	Surface int         `json:"surface"`
	Origin  model.Point `json:"origin"`
	Dir     model.Point `json:"dir"`
	U0      float64     `json:"u0"`
	V0      float64     `json:"v0"`
}

type IntersectResponse struct {
	Intersection surface.Intersection `json:"intersection"`
}
