package types

import (
	"strings"

	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// Operator is the rule a strategy applies between its left and right series.
type Operator string

const (
	OperatorCrossesAbove   Operator = "crosses_above"
	OperatorCrossesBelow   Operator = "crosses_below"
	OperatorGreater        Operator = ">"
	OperatorGreaterOrEqual Operator = ">="
	OperatorLess           Operator = "<"
	OperatorLessOrEqual    Operator = "<="
	OperatorEqual          Operator = "=="
)

// AllOperators lists every supported operator in display order.
var AllOperators = []Operator{
	OperatorCrossesAbove,
	OperatorCrossesBelow,
	OperatorGreater,
	OperatorGreaterOrEqual,
	OperatorLess,
	OperatorLessOrEqual,
	OperatorEqual,
}

// ParseOperator converts user input into an Operator.
func ParseOperator(s string) (Operator, error) {
	op := Operator(strings.TrimSpace(s))
	for _, known := range AllOperators {
		if op == known {
			return op, nil
		}
	}

	return "", errors.Newf(errors.ErrCodeInvalidOperator, "unsupported operator %q", s)
}

// IsCrossing reports whether the operator compares consecutive samples.
func (o Operator) IsCrossing() bool {
	return o == OperatorCrossesAbove || o == OperatorCrossesBelow
}
