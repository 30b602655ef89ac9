package solver

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const maxPenalty = 1e12

// Lagrangian is an augmented lagrangian solver.
// Every major iteration minimizes the augmented lagrangian with LBFGS
// and then updates the multipliers and the penalty.
type Lagrangian struct {
	logger  zerolog.Logger
	penalty float64
	growth  float64
}

// NewLagrangian creates a new augmented lagrangian solver.
func NewLagrangian() *Lagrangian {
	return &Lagrangian{
		logger:  log.Logger,
		penalty: 10,
		growth:  10,
	}
}

// WithLogger sets the logger for the solver progress.
func (l *Lagrangian) WithLogger(logger zerolog.Logger) *Lagrangian {
	l.logger = logger
	return l
}

// WithPenalty sets the initial penalty and its growth factor.
func (l *Lagrangian) WithPenalty(penalty, growth float64) *Lagrangian {
	l.penalty = penalty
	l.growth = growth
	return l
}

// term is a single inequality g(x) <= 0 or equality h(x) = 0,
// derived from a constraint row or a variable bound.
type term struct {
	// row is the constraint index, or -1 for a variable bound
	row int
	// index is the variable index for bounds
	index int
	// sign is +1 for g = c - upper and -1 for g = lower - c
	sign     float64
	value    float64
	equality bool
	lambda   float64
}

func (t *term) eval(x, c []float64) float64 {
	v := 0.0
	if t.row >= 0 {
		v = c[t.row]
	} else {
		v = x[t.index]
	}
	return t.sign * (v - t.value)
}

// multiplier returns the derivative of the penalty term with respect to g.
func (t *term) multiplier(g, mu float64) float64 {
	if t.equality {
		return t.lambda + mu*g
	}
	return math.Max(0, t.lambda+mu*g)
}

// penalty returns the value of the penalty term.
func (t *term) penalty(g, mu float64) float64 {
	if t.equality {
		return t.lambda*g + 0.5*mu*g*g
	}
	m := math.Max(0, t.lambda+mu*g)
	return (m*m - t.lambda*t.lambda) / (2 * mu)
}

func terms(p Problem) []*term {
	tt := make([]*term, 0)
	add := func(row, index int, b Bound) {
		if b.Equality() {
			tt = append(tt, &term{row: row, index: index, sign: 1, value: b.Lower, equality: true})
			return
		}
		if !math.IsInf(b.Upper, 1) {
			tt = append(tt, &term{row: row, index: index, sign: 1, value: b.Upper})
		}
		if !math.IsInf(b.Lower, -1) {
			tt = append(tt, &term{row: row, index: index, sign: -1, value: b.Lower})
		}
	}
	for i, b := range p.Constraints {
		add(i, -1, b)
	}
	for i := range p.X0 {
		add(-1, i, p.variable(i))
	}
	return tt
}

// evaluator caches the problem callbacks for the last point,
// because the inner solver asks for value and gradient separately.
type evaluator struct {
	p     Problem
	count int

	x    []float64
	f    float64
	c    []float64
	fail bool

	gx   []float64
	grad []float64
	jac  *mat.Dense
}

func (e *evaluator) objcon(x []float64) (float64, []float64, bool) {
	if e.x == nil || !floats.Equal(e.x, x) {
		e.count++
		e.f, e.c, e.fail = e.p.ObjCon(x)
		e.x = append(e.x[:0], x...)
	}
	return e.f, e.c, e.fail
}

func (e *evaluator) sens(x []float64) ([]float64, *mat.Dense, bool) {
	if e.gx == nil || !floats.Equal(e.gx, x) {
		var fail bool
		e.grad, e.jac, fail = e.p.Sens(x)
		if fail {
			e.gx = nil
			return nil, nil, true
		}
		e.gx = append(e.gx[:0], x...)
	}
	return e.grad, e.jac, false
}

// infeasibility returns the largest violation of the constraints and bounds.
func infeasibility(p Problem, x, c []float64) float64 {
	var v float64
	for i, b := range p.Constraints {
		v = math.Max(v, b.Violation(c[i]))
	}
	for i := range x {
		v = math.Max(v, p.variable(i).Violation(x[i]))
	}
	return v
}

// Minimize solves the problem starting from p.X0.
func (l *Lagrangian) Minimize(p Problem, opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	e := &evaluator{p: p}
	tt := terms(p)
	n := len(p.X0)
	mu := l.penalty

	// the augmented lagrangian and its gradient for the current multipliers
	var fail bool
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			f, c, failed := e.objcon(x)
			if failed {
				fail = true
				return math.Inf(1)
			}
			for _, t := range tt {
				f += t.penalty(t.eval(x, c), mu)
			}
			return f
		},
		Grad: func(grad, x []float64) {
			_, c, failed := e.objcon(x)
			g, jac, sfailed := e.sens(x)
			if failed || sfailed {
				fail = true
				for i := range grad {
					grad[i] = math.NaN()
				}
				return
			}
			copy(grad, g)
			w := make([]float64, len(p.Constraints))
			for _, t := range tt {
				m := t.multiplier(t.eval(x, c), mu) * t.sign
				if t.row >= 0 {
					w[t.row] += m
				} else {
					grad[t.index] += m
				}
			}
			if len(w) > 0 && floats.Norm(w, math.Inf(1)) > 0 {
				jtw := mat.NewVecDense(n, nil)
				jtw.MulVec(jac.T(), mat.NewVecDense(len(w), w))
				floats.Add(grad, jtw.RawVector().Data)
			}
		},
	}

	settings := &optimize.Settings{
		GradientThreshold: opts.OptimalityTolerance,
		MajorIterations:   opts.MinorIterations,
	}

	result := &Result{
		X:       append([]float64(nil), p.X0...),
		History: make([]float64, 0, opts.MajorIterations),
		Status:  IterationLimit,
	}

	previous := math.Inf(1)
	for k := 0; k < opts.MajorIterations; k++ {
		inner, err := optimize.Minimize(problem, result.X, settings, &optimize.LBFGS{})
		if inner == nil {
			return nil, fmt.Errorf("could not minimize '%s' at iteration %d: %w", p.Name, k, err)
		}
		if fail {
			result.Status = Failure
			result.Evaluations = e.count
			return result, fmt.Errorf("evaluation of '%s' failed at iteration %d", p.Name, k)
		}
		if err != nil {
			l.logger.Debug().
				Err(err).
				Str("problem", p.Name).
				Int("iteration", k).
				Str("status", inner.Status.String()).
				Msg("inner minimization stopped early")
		}

		copy(result.X, inner.X)
		f, c, _ := e.objcon(result.X)
		v := infeasibility(p, result.X, c)
		result.F = f
		result.Infeasibility = v
		result.Iterations = k + 1
		result.History = append(result.History, f)

		optimality := math.Inf(1)
		if inner.Gradient != nil {
			optimality = floats.Norm(inner.Gradient, math.Inf(1))
		}

		l.logger.Debug().
			Str("problem", p.Name).
			Int("iteration", k).
			Float64("objective", f).
			Float64("infeasibility", v).
			Float64("optimality", optimality).
			Float64("penalty", mu).
			Msg("major iteration")

		if v <= opts.FeasibilityTolerance && optimality <= opts.OptimalityTolerance*math.Max(1, math.Abs(f)) {
			result.Status = Optimal
			break
		}

		for _, t := range tt {
			t.lambda = t.multiplier(t.eval(result.X, c), mu)
		}
		if v > 0.25*previous && mu < maxPenalty {
			mu *= l.growth
		}
		previous = v
	}

	result.Evaluations = e.count
	return result, nil
}
