package math

import "math"

// Stats accumulates running statistics of a set of numbers.
type Stats struct {
	count          int
	sum, squares   float64
	min, max       float64
	mean, dSquared float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{
		min: math.MaxFloat64,
		max: -math.MaxFloat64,
	}
}

// Push adds another element to the set.
func (s *Stats) Push(v float64) {
	s.count++
	s.sum += v
	s.squares += v * v
	diff := (v - s.mean) / float64(s.count)
	mean := s.mean + diff
	s.dSquared += (v - mean) * (v - s.mean)
	s.mean = mean

	if s.min > v {
		s.min = v
	}
	if s.max < v {
		s.max = v
	}
}

// Count returns the number of elements.
func (s Stats) Count() int {
	return s.count
}

// Sum returns the sum of all elements.
func (s Stats) Sum() float64 {
	return s.sum
}

// Avg returns the average value of the set.
func (s Stats) Avg() float64 {
	return s.mean
}

// Min returns the smallest element.
func (s Stats) Min() float64 {
	return s.min
}

// Max returns the largest element.
func (s Stats) Max() float64 {
	return s.max
}

// RMS is the root mean square of the set.
func (s Stats) RMS() float64 {
	if s.count == 0 {
		return 0
	}
	return math.Sqrt(s.squares / float64(s.count))
}

// Variance is the mathematical variance of the set.
func (s Stats) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	return math.Max(0, s.dSquared/float64(s.count))
}

// StDev is the standard deviation of the set.
func (s Stats) StDev() float64 {
	return math.Sqrt(s.Variance())
}
