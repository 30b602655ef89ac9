package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	xmath "github.com/drakos74/free-spline/internal/math"
	"github.com/drakos74/free-spline/internal/metrics"
	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/surface"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	u := xmath.Linspace(0, 1, 5)
	plane := xmath.Plane(model.Point{}, model.Point{1, 0, 0}, model.Point{0, 1, 0}, u, u)
	cfg := surface.DefaultConfig()
	cfg.FitType = surface.Interpolate
	s, err := surface.New(model.NewSamples(plane), cfg, surface.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	return NewServer("test", 0).
		Add(Live()).
		Add(SurfaceRoutes(s, false)...).
		Handle(metrics.Path, metrics.Handler())
}

func request(t *testing.T, srv *Server, method Method, path string, body interface{}) *httptest.ResponseRecorder {
	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		require.NoError(t, err)
	}
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, httptest.NewRequest(string(method), path, bytes.NewReader(b)))
	return rec
}

func TestServer_Routes(t *testing.T) {

	type test struct {
		method Method
		path   string
		body   interface{}
		code   int
		check  func(t *testing.T, b []byte)
	}

	tests := map[string]test{
		"live": {
			method: GET,
			path:   "/data",
			code:   http.StatusOK,
		},
		"wrong-method": {
			method: GET,
			path:   "/api/value",
			code:   http.StatusNotImplemented,
		},
		"value": {
			method: POST,
			path:   "/api/value",
			body:   ValueRequest{U: []float64{0.25, 1}, V: []float64{0.5, 0}},
			code:   http.StatusOK,
			check: func(t *testing.T, b []byte) {
				var resp ValueResponse
				require.NoError(t, json.Unmarshal(b, &resp))
				require.Len(t, resp.Points, 2)
				assert.InDeltaSlice(t, []float64{0.25, 0.5, 0}, resp.Points[0][:], 1e-10)
				assert.InDeltaSlice(t, []float64{1, 0, 0}, resp.Points[1][:], 1e-10)
				assert.InDelta(t, 1, resp.Jacobians[0][0][0], 1e-10)
				assert.InDelta(t, 1, resp.Jacobians[0][1][1], 1e-10)
			},
		},
		"value-shape": {
			method: POST,
			path:   "/api/value",
			body:   ValueRequest{U: []float64{0.25, 1}, V: []float64{0.5}},
			code:   http.StatusBadRequest,
		},
		"value-surface": {
			method: POST,
			path:   "/api/value",
			body:   ValueRequest{Surface: 1, U: []float64{0.25}, V: []float64{0.5}},
			code:   http.StatusBadRequest,
		},
		"intersect": {
			method: POST,
			path:   "/api/intersect",
			body:   IntersectRequest{Origin: model.Point{0.4, 0.7, 2}, Dir: model.Point{0, 0, -1}, U0: 0.5, V0: 0.5},
			code:   http.StatusOK,
			check: func(t *testing.T, b []byte) {
				var resp IntersectResponse
				require.NoError(t, json.Unmarshal(b, &resp))
				assert.True(t, resp.Intersection.Converged)
				assert.InDelta(t, 0.4, resp.Intersection.U, 1e-10)
				assert.InDelta(t, 0.7, resp.Intersection.V, 1e-10)
				assert.InDelta(t, 2, resp.Intersection.S, 1e-10)
			},
		},
		"intersect-parallel": {
			method: POST,
			path:   "/api/intersect",
			body:   IntersectRequest{Origin: model.Point{0.4, 0.7, 2}, Dir: model.Point{1, 0, 0}, U0: 0.5, V0: 0.5},
			code:   http.StatusUnprocessableEntity,
		},
		"report": {
			method: GET,
			path:   "/api/report",
			code:   http.StatusOK,
			check: func(t *testing.T, b []byte) {
				var r surface.Report
				require.NoError(t, json.Unmarshal(b, &r))
				assert.Equal(t, surface.Interpolate, r.Fit)
				assert.Len(t, r.Surfaces, 1)
			},
		},
		"metrics": {
			method: GET,
			path:   metrics.Path,
			code:   http.StatusOK,
		},
	}

	srv := newServer(t)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := request(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code)
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}
