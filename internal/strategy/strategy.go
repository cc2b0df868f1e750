package strategy

import (
	"strings"

	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// DefaultLeft is used when a strategy's left expression is blank.
const DefaultLeft = "close"

// Rule is a strategy definition: left and right formulas joined by an operator.
type Rule struct {
	Left     string         `json:"left" yaml:"left"`
	Operator types.Operator `json:"operator" yaml:"operator"`
	Right    string         `json:"right" yaml:"right"`
}

// NewRule normalizes and validates a rule definition. Formulas are not compiled here.
func NewRule(left, operator, right string) (Rule, error) {
	left = strings.TrimSpace(left)
	if left == "" {
		left = DefaultLeft
	}

	right = strings.TrimSpace(right)
	if right == "" {
		return Rule{}, errors.New(errors.ErrCodeMissingParameter, "right expression required")
	}

	op, err := types.ParseOperator(operator)
	if err != nil {
		return Rule{}, err
	}

	return Rule{
		Left:     left,
		Operator: op,
		Right:    right,
	}, nil
}

// Name is the display name: left, operator and right joined by spaces.
func (r Rule) Name() string {
	return r.Left + " " + string(r.Operator) + " " + r.Right
}

// Signals scans already evaluated left and right series.
func (r Rule) Signals(left, right types.Series) []types.Signal {
	return Scan(r.Operator, left, right)
}
