package surface

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/free-spline/internal/fit"
	"github.com/drakos74/free-spline/internal/metrics"
	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/solver"
	"github.com/drakos74/free-spline/internal/spline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Surface is a set of tensor product B-spline surfaces fitted to sampled patches.
type Surface struct {
	logger  zerolog.Logger
	solver  solver.Solver
	config  Config
	samples model.Samples
	tensors []spline.Tensor
	control []model.Grid
	// coef holds the control grids split per dimension
	coef   [][model.Dim][][]float64
	result *solver.Result
	report Report
}

// Option configures the surface.
type Option func(s *Surface)

// WithLogger sets the logger of the surface and its default solver.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Surface) {
		s.logger = logger
	}
}

// WithSolver sets the solver of the lms fit.
func WithSolver(solver solver.Solver) Option {
	return func(s *Surface) {
		s.solver = solver
	}
}

// New fits the surfaces to the samples according to the config.
func New(samples model.Samples, cfg Config, opts ...Option) (*Surface, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("could not create surface: %w", err)
	}
	if err := samples.Validate(); err != nil {
		return nil, fmt.Errorf("could not create surface: %w", err)
	}

	s := &Surface{
		logger:  log.Logger,
		config:  cfg,
		samples: samples,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.solver == nil {
		s.solver = solver.NewLagrangian().WithLogger(s.logger)
	}

	start := time.Now()
	var err error
	switch cfg.FitType {
	case Interpolate:
		err = s.interpolate()
	case LMS:
		err = s.lms()
	}
	if err != nil {
		return nil, fmt.Errorf("could not fit '%s' surface: %w", cfg.FitType, err)
	}

	s.report = s.newReport(time.Since(start))
	metrics.Observer.Time(start, string(cfg.FitType))
	metrics.Observer.Error(s.report.RMS, string(cfg.FitType))

	s.logger.Info().
		Str("fit", string(cfg.FitType)).
		Int("surfaces", samples.Len()).
		Float64("rms", s.report.RMS).
		Float64("max", s.report.Max).
		Dur("duration", s.report.Duration).
		Msg("fitted surface")
	return s, nil
}

func (s *Surface) interpolate() error {
	n := s.samples.Len()
	s.tensors = make([]spline.Tensor, n)
	s.control = make([]model.Grid, n)
	for i, p := range s.samples.Patches {
		for d := 0; d < model.Dim; d++ {
			t, coef, err := spline.Interpolate(p.U, p.V, model.Grid(p.X).Component(model.Dimension(d)), s.config.OrderU, s.config.OrderV)
			if err != nil {
				return fmt.Errorf("could not interpolate patch %d along %s: %w", i, model.Dimension(d), err)
			}
			if d == 0 {
				s.tensors[i] = t
				s.control[i] = model.NewGrid(t.Nu(), t.Nv())
			}
			s.control[i].Set(model.Dimension(d), coef)
		}
	}
	s.split()
	return nil
}

func (s *Surface) lms() error {
	cfg := s.config
	if s.samples.Nu() < cfg.Nctlu || s.samples.Nv() < cfg.Nctlv {
		return fmt.Errorf("need at least %dx%d samples for %dx%d control points but got %dx%d: %w",
			cfg.Nctlu, cfg.Nctlv, cfg.Nctlu, cfg.Nctlv, s.samples.Nu(), s.samples.Nv(), model.ShapeErr)
	}

	tensor := spline.NewTensor(cfg.OrderU, cfg.OrderV,
		spline.Clamped(cfg.Nctlu, cfg.OrderU, spline.Cosine),
		spline.Clamped(cfg.Nctlv, cfg.OrderV, spline.Uniform))
	layout := fit.NewLayout(s.samples.Len(), cfg.Nctlu, cfg.Nctlv)

	operators, err := fit.Operators(tensor, s.samples)
	if err != nil {
		return err
	}
	constraints := fit.NewConstraints(layout, s.samples)
	problem, err := fit.NewProblem(operators, s.samples, constraints, layout)
	if err != nil {
		return err
	}

	x0, err := fit.Seed(operators, s.samples, constraints, layout)
	if err != nil {
		return err
	}
	s.logger.Debug().
		Int("variables", layout.Len()).
		Int("constraints", constraints.Len()).
		Float64("objective", problem.Objective(x0)).
		Msg("seeded fit")

	result, err := s.solver.Minimize(problem.Solver(x0, cfg.Bound), cfg.Solver)
	if err != nil {
		return fmt.Errorf("could not minimize: %w", err)
	}
	if result.Status != solver.Optimal {
		s.logger.Warn().
			Str("status", result.Status.String()).
			Int("iterations", result.Iterations).
			Float64("infeasibility", result.Infeasibility).
			Msg("optimizer did not converge")
	}
	s.result = result

	s.tensors = make([]spline.Tensor, layout.Nsurf)
	for i := range s.tensors {
		s.tensors[i] = tensor
	}
	s.control = layout.Unpack(result.X)
	s.split()
	return nil
}

func (s *Surface) split() {
	s.coef = make([][model.Dim][][]float64, len(s.control))
	for i, g := range s.control {
		for d := 0; d < model.Dim; d++ {
			s.coef[i][d] = g.Component(model.Dimension(d))
		}
	}
}

// Len returns the number of surfaces.
func (s *Surface) Len() int {
	return len(s.tensors)
}

// Config returns the config the surface was fitted with.
func (s *Surface) Config() Config {
	return s.config
}

// Samples returns the samples the surface was fitted to.
func (s *Surface) Samples() model.Samples {
	return s.samples
}

// Tensor returns the spline space of the given surface.
func (s *Surface) Tensor(surf int) spline.Tensor {
	return s.tensors[surf]
}

// Control returns the control points of the given surface.
func (s *Surface) Control(surf int) model.Grid {
	return s.control[surf]
}

// Result returns the optimizer result of an lms fit, nil otherwise.
func (s *Surface) Result() *solver.Result {
	return s.result
}

// Value evaluates the given surface at (u,v).
func (s *Surface) Value(surf int, u, v float64) model.Point {
	return s.Derivative(surf, u, v, 0, 0)
}

// Derivative evaluates the (du,dv) partial derivative of the given surface at (u,v).
func (s *Surface) Derivative(surf int, u, v float64, du, dv int) model.Point {
	var p model.Point
	for d := range p {
		p[d] = s.tensors[surf].Value(u, v, du, dv, s.coef[surf][d])
	}
	return p
}

// ValueV evaluates the given surface at the points (u[i], v[i]).
func (s *Surface) ValueV(surf int, u, v []float64) ([]model.Point, error) {
	if len(u) != len(v) {
		return nil, fmt.Errorf("u and v must be the same length %d vs %d: %w", len(u), len(v), model.ShapeErr)
	}
	pp := make([]model.Point, len(u))
	for i := range u {
		pp[i] = s.Value(surf, u[i], v[i])
	}
	return pp, nil
}

// ValueM evaluates the given surface at the points (u[i][j], v[i][j]).
func (s *Surface) ValueM(surf int, u, v [][]float64) ([][]model.Point, error) {
	if len(u) != len(v) {
		return nil, fmt.Errorf("u and v must be the same shape %d vs %d rows: %w", len(u), len(v), model.ShapeErr)
	}
	pp := make([][]model.Point, len(u))
	for i := range u {
		row, err := s.ValueV(surf, u[i], v[i])
		if err != nil {
			return nil, fmt.Errorf("invalid row %d: %w", i, err)
		}
		pp[i] = row
	}
	return pp, nil
}

// Jacobian returns the partial derivatives of the given surface at (u,v),
// column 0 along u and column 1 along v.
func (s *Surface) Jacobian(surf int, u, v float64) [model.Dim][2]float64 {
	du := s.Derivative(surf, u, v, 1, 0)
	dv := s.Derivative(surf, u, v, 0, 1)
	var j [model.Dim][2]float64
	for d := 0; d < model.Dim; d++ {
		j[d][0] = du[d]
		j[d][1] = dv[d]
	}
	return j
}

// rms returns the root mean square error for the given sum of squared errors.
func (s *Surface) rms(f float64) float64 {
	n := s.samples.Len() * s.samples.Nu() * s.samples.Nv()
	return math.Sqrt(f / float64(n))
}
