package surface

import (
	"math"
	"time"

	xmath "github.com/drakos74/free-spline/internal/math"
	"gonum.org/v1/gonum/spatial/r3"
)

// Residuals summarises the distance between a fitted surface and its samples.
type Residuals struct {
	Count int     `json:"count"`
	RMS   float64 `json:"rms"`
	Avg   float64 `json:"avg"`
	Max   float64 `json:"max"`
	StDev float64 `json:"stdev"`
}

func newResiduals(stats *xmath.Stats) Residuals {
	return Residuals{
		Count: stats.Count(),
		RMS:   stats.RMS(),
		Avg:   stats.Avg(),
		Max:   stats.Max(),
		StDev: stats.StDev(),
	}
}

// Report describes the quality of a fit.
type Report struct {
	Fit FitType `json:"fit"`
	// Objective is the sum of squared distances to the samples.
	Objective float64 `json:"objective"`
	RMS       float64 `json:"rms"`
	Max       float64 `json:"max"`
	// LE is the largest area of the triangles spanned by the control points around the leading edge.
	LE            float64       `json:"le"`
	Status        string        `json:"status,omitempty"`
	Iterations    int           `json:"iterations,omitempty"`
	Evaluations   int           `json:"evaluations,omitempty"`
	Infeasibility float64       `json:"infeasibility,omitempty"`
	Duration      time.Duration `json:"duration"`
	Surfaces      []Residuals   `json:"surfaces"`
}

// Report returns the quality report of the fit.
func (s *Surface) Report() Report {
	return s.report
}

func (s *Surface) newReport(duration time.Duration) Report {
	r := Report{
		Fit:      s.config.FitType,
		Duration: duration,
		Surfaces: make([]Residuals, s.samples.Len()),
	}

	total := xmath.NewStats()
	var f float64
	for i, p := range s.samples.Patches {
		stats := xmath.NewStats()
		for a, u := range p.U {
			for b, v := range p.V {
				d := s.Value(i, u, v).Sub(p.X[a][b]).Norm()
				stats.Push(d)
				total.Push(d)
				f += d * d
			}
		}
		r.Surfaces[i] = newResiduals(stats)
	}

	r.Objective = f
	r.RMS = s.rms(f)
	r.Max = total.Max()
	r.LE = s.leadingEdge()

	if s.result != nil {
		r.Status = s.result.Status.String()
		r.Iterations = s.result.Iterations
		r.Evaluations = s.result.Evaluations
		r.Infeasibility = s.result.Infeasibility
	}
	return r
}

// leadingEdge returns the largest LE triangle area over the spanwise control points.
func (s *Surface) leadingEdge() float64 {
	if len(s.control) < 2 {
		return 0
	}
	upper, lower := s.control[0], s.control[1]
	if len(upper) < 2 || len(lower) < 2 {
		return 0
	}
	var area float64
	for j := range upper[0] {
		if j >= len(lower[0]) {
			break
		}
		a := upper[0][j].Vec()
		b := upper[1][j].Vec()
		c := lower[len(lower)-2][j].Vec()
		area = math.Max(area, 0.5*r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))))
	}
	return area
}
