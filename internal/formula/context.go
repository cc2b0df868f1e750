package formula

import (
	"sort"

	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// SeriesClose is the series every evaluation context provides.
const SeriesClose = "close"

// EvaluationContext holds the named series a formula is evaluated against.
// It is read-only once built; all series share the same length.
type EvaluationContext struct {
	length int
	series map[string]types.Series
}

// NewEvaluationContext builds a context exposing close prices as "close".
func NewEvaluationContext(closes []float64) *EvaluationContext {
	return &EvaluationContext{
		length: len(closes),
		series: map[string]types.Series{
			SeriesClose: append(types.Series(nil), closes...),
		},
	}
}

// NewEvaluationContextWithSeries builds a context from several named series.
// The mapping must contain "close" and every series must have the same length.
func NewEvaluationContextWithSeries(series map[string]types.Series) (*EvaluationContext, error) {
	closes, ok := series[SeriesClose]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeMissingParameter, "evaluation context requires a %q series", SeriesClose)
	}

	copied := make(map[string]types.Series, len(series))

	for name, s := range series {
		if len(s) != len(closes) {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "series %q has length %d, expected %d", name, len(s), len(closes))
		}

		copied[name] = append(types.Series(nil), s...)
	}

	return &EvaluationContext{
		length: len(closes),
		series: copied,
	}, nil
}

// Length returns the number of samples N.
func (c *EvaluationContext) Length() int {
	return c.length
}

// Lookup returns the named series. Callers must not modify it.
func (c *EvaluationContext) Lookup(name string) (types.Series, bool) {
	s, ok := c.series[name]

	return s, ok
}

// Names returns the sorted names of the available series.
func (c *EvaluationContext) Names() []string {
	names := make([]string, 0, len(c.series))
	for name := range c.series {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
