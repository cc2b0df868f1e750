package types

import (
	"encoding/json"
	"math"
)

// Series is an index-aligned sequence of float64 values.
// NaN marks an index where no value is defined.
type Series []float64

// NewSeries returns a series of length n with every element set to v.
func NewSeries(n int, v float64) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = v
	}

	return s
}

// NaNSeries returns a series of length n with every element undefined.
func NaNSeries(n int) Series {
	return NewSeries(n, math.NaN())
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s)
}

// At returns the value at index i, or NaN when i is out of range.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}

	return s[i]
}

// Last returns the final value of the series, or NaN for an empty series.
func (s Series) Last() float64 {
	return s.At(len(s) - 1)
}

// Defined reports whether the value at index i is a finite number.
func (s Series) Defined(i int) bool {
	v := s.At(i)

	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarshalJSON encodes undefined values (NaN, ±Inf) as null.
func (s Series) MarshalJSON() ([]byte, error) {
	out := make([]*float64, len(s))
	for i := range s {
		if s.Defined(i) {
			v := s[i]
			out[i] = &v
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes null entries as NaN.
func (s *Series) UnmarshalJSON(data []byte) error {
	var in []*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	out := make(Series, len(in))
	for i, v := range in {
		if v == nil {
			out[i] = math.NaN()
			continue
		}

		out[i] = *v
	}

	*s = out

	return nil
}
