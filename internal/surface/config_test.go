package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {

	type test struct {
		config func(c Config) Config
		field  string
	}

	tests := map[string]test{
		"default": {
			config: func(c Config) Config { return c },
		},
		"interpolate-ignores-control-points": {
			config: func(c Config) Config {
				c.FitType = Interpolate
				c.Nctlu = 0
				return c
			},
		},
		"fit-type": {
			config: func(c Config) Config {
				c.FitType = "cubic"
				return c
			},
			field: "fit_type",
		},
		"order": {
			config: func(c Config) Config {
				c.OrderV = 1
				return c
			},
			field: "order_v",
		},
		"control-points": {
			config: func(c Config) Config {
				c.Nctlu = 3
				return c
			},
			field: "nctlu",
		},
		"bound": {
			config: func(c Config) Config {
				c.Bound = 0
				return c
			},
			field: "bound",
		},
		"iterations": {
			config: func(c Config) Config {
				c.Solver.MajorIterations = 0
				return c
			},
			field: "solver.major_iterations",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.config(DefaultConfig()).Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, InvalidConfigErr)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestParseFitType(t *testing.T) {
	ft, err := ParseFitType("lms")
	require.NoError(t, err)
	assert.Equal(t, LMS, ft)

	ft, err = ParseFitType("interpolate")
	require.NoError(t, err)
	assert.Equal(t, Interpolate, ft)

	_, err = ParseFitType("bezier")
	assert.ErrorIs(t, err, InvalidConfigErr)
	assert.Equal(t, "invalid value 'bezier' for 'fit_type'", err.Error())
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, LMS, c.FitType)
	assert.Equal(t, 13, c.Nctlu)
	assert.Equal(t, 9, c.Nctlv)
	assert.Equal(t, 4, c.OrderU)
	assert.Equal(t, 4, c.OrderV)
	assert.Equal(t, 150, c.Solver.MajorIterations)
	assert.Equal(t, 1e-6, c.Solver.OptimalityTolerance)
	assert.Equal(t, 1e-9, c.Solver.FeasibilityTolerance)
}
