package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/surface"
)

var badRequestErr = errors.New("bad request")

// SurfaceRoutes exposes the evaluation and the ray intersection of a fitted surface.
func SurfaceRoutes(s *surface.Surface, debug bool) []Route {
	return []Route{
		{
			Action: Api,
			Path:   "value",
			Method: POST,
			Exec: func(r *http.Request) ([]byte, int, error) {
				var req ValueRequest
				if err := ReadJson(r, debug, &req); err != nil {
					return nil, http.StatusBadRequest, fmt.Errorf("could not decode request: %w", err)
				}
				if err := check(s, req.Surface); err != nil {
					return nil, http.StatusBadRequest, err
				}
				points, err := s.ValueV(req.Surface, req.U, req.V)
				if err != nil {
					return nil, http.StatusBadRequest, err
				}
				jacobians := make([][model.Dim][2]float64, len(points))
				for i := range points {
					jacobians[i] = s.Jacobian(req.Surface, req.U[i], req.V[i])
				}
				return encode(ValueResponse{
					Points:    points,
					Jacobians: jacobians,
				})
			},
		},
		{
			Action: Api,
			Path:   "intersect",
			Method: POST,
			Exec: func(r *http.Request) ([]byte, int, error) {
				var req IntersectRequest
				if err := ReadJson(r, debug, &req); err != nil {
					return nil, http.StatusBadRequest, fmt.Errorf("could not decode request: %w", err)
				}
				if err := check(s, req.Surface); err != nil {
					return nil, http.StatusBadRequest, err
				}
				in, err := s.FindIntersection(req.Surface, req.Origin.Vec(), req.Dir.Vec(), req.U0, req.V0)
				if errors.Is(err, surface.SingularErr) {
					return nil, http.StatusUnprocessableEntity, err
				}
				if err != nil {
					return nil, http.StatusInternalServerError, err
				}
				return encode(IntersectResponse{Intersection: in})
			},
		},
		{
			Action: Api,
			Path:   "report",
			Method: GET,
			Exec: func(r *http.Request) ([]byte, int, error) {
				return encode(s.Report())
			},
		},
	}
}

func check(s *surface.Surface, surf int) error {
	if surf < 0 || surf >= s.Len() {
		return fmt.Errorf("surface %d not in [0,%d): %w", surf, s.Len(), badRequestErr)
	}
	return nil
}

func encode(v interface{}) ([]byte, int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("could not encode response: %w", err)
	}
	return b, http.StatusOK, nil
}
