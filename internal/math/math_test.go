package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {

	type test struct {
		input  float64
		output string
	}

	tests := map[string]test{
		"0": {
			input:  0,
			output: "0.000000",
		},
		"-1": {
			input:  -1,
			output: "-1.000000",
		},
		"round": {
			input:  1.23456789,
			output: "1.234568",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.output, Format(tt.input))
		})
	}

}

func TestClamp(t *testing.T) {

	type test struct {
		input   float64
		output  float64
		outside bool
	}

	tests := map[string]test{
		"inside": {
			input:  0.5,
			output: 0.5,
		},
		"below": {
			input:   -3,
			output:  -1,
			outside: true,
		},
		"above": {
			input:   1.0001,
			output:  1,
			outside: true,
		},
		"edge": {
			input:  -1,
			output: -1,
		},
		"inf": {
			input:   math.Inf(1),
			output:  1,
			outside: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.output, Clamp(tt.input, -1, 1))
			assert.Equal(t, tt.outside, Outside(tt.input, -1, 1))
		})
	}
}

func TestStats(t *testing.T) {

	stats := NewStats()
	for _, v := range []float64{3, -4, 0, 1} {
		stats.Push(v)
	}

	assert.Equal(t, 4, stats.Count())
	assert.Equal(t, 0.0, stats.Sum())
	assert.Equal(t, 0.0, stats.Avg())
	assert.Equal(t, -4.0, stats.Min())
	assert.Equal(t, 3.0, stats.Max())
	assert.InDelta(t, math.Sqrt(26.0/4), stats.RMS(), 1e-12)
	assert.InDelta(t, 26.0/4, stats.Variance(), 1e-12)
	assert.InDelta(t, math.Sqrt(26.0/4), stats.StDev(), 1e-12)

	assert.Equal(t, 0.0, NewStats().RMS())
}
