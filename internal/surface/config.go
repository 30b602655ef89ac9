package surface

import (
	"errors"
	"fmt"

	"github.com/drakos74/free-spline/internal/solver"
)

// InvalidConfigErr signals a configuration the surface cannot be built with.
var InvalidConfigErr = errors.New("invalid config")

// ConfigError names the offending config field.
type ConfigError struct {
	Field string
	Value interface{}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid value '%v' for '%s'", e.Value, e.Field)
}

func (e *ConfigError) Unwrap() error {
	return InvalidConfigErr
}

// FitType is the way the control points are computed out of the samples.
type FitType string

const (
	// Interpolate passes the surface through every sample.
	Interpolate FitType = "interpolate"
	// LMS fits a fixed number of control points in the least squares sense,
	// subject to the corner, edge and LE constraints.
	LMS FitType = "lms"
)

// ParseFitType parses the fit type name.
func ParseFitType(s string) (FitType, error) {
	switch t := FitType(s); t {
	case Interpolate, LMS:
		return t, nil
	}
	return "", &ConfigError{Field: "fit_type", Value: s}
}

// Config defines how a surface is fitted.
type Config struct {
	FitType FitType `json:"fit_type"`
	// Nctlu and Nctlv are the number of control points for the lms fit.
	Nctlu  int `json:"nctlu"`
	Nctlv  int `json:"nctlv"`
	OrderU int `json:"order_u"`
	OrderV int `json:"order_v"`
	// Bound is how far the optimizer may move every control coordinate away from the seed.
	Bound  float64        `json:"bound"`
	Solver solver.Options `json:"solver"`
}

// DefaultConfig returns the bicubic lms fit with 13x9 control points.
func DefaultConfig() Config {
	return Config{
		FitType: LMS,
		Nctlu:   13,
		Nctlv:   9,
		OrderU:  4,
		OrderV:  4,
		Bound:   0.1,
		Solver:  solver.DefaultOptions(),
	}
}

// Validate checks the config on its own.
func (c Config) Validate() error {
	if _, err := ParseFitType(string(c.FitType)); err != nil {
		return err
	}
	if c.OrderU < 2 {
		return &ConfigError{Field: "order_u", Value: c.OrderU}
	}
	if c.OrderV < 2 {
		return &ConfigError{Field: "order_v", Value: c.OrderV}
	}
	if c.FitType == Interpolate {
		return nil
	}
	if c.Nctlu < c.OrderU {
		return &ConfigError{Field: "nctlu", Value: c.Nctlu}
	}
	if c.Nctlv < c.OrderV {
		return &ConfigError{Field: "nctlv", Value: c.Nctlv}
	}
	if c.Bound <= 0 {
		return &ConfigError{Field: "bound", Value: c.Bound}
	}
	if c.Solver.MajorIterations <= 0 {
		return &ConfigError{Field: "solver.major_iterations", Value: c.Solver.MajorIterations}
	}
	if c.Solver.MinorIterations <= 0 {
		return &ConfigError{Field: "solver.minor_iterations", Value: c.Solver.MinorIterations}
	}
	return nil
}
