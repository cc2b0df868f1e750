package formula

import (
	"strings"

	"github.com/rxtech-lab/argo-formula/internal/indicator"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// CompiledFormula pairs trimmed source text with its parsed AST.
// It is never mutated after Compile returns and may be evaluated concurrently.
type CompiledFormula struct {
	source    string
	ast       Node
	evaluator *Evaluator
}

// Compile parses source once. Semantic errors (unknown names, arity) surface on Evaluate.
func Compile(source string, registry indicator.FunctionRegistry) (*CompiledFormula, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, errors.New(errors.ErrCodeEmptyFormula, "formula is empty")
	}

	ast, err := Parse(source)
	if err != nil {
		return nil, err
	}

	return &CompiledFormula{
		source:    trimmed,
		ast:       ast,
		evaluator: NewEvaluator(registry),
	}, nil
}

// Source returns the trimmed formula text.
func (f *CompiledFormula) Source() string {
	return f.source
}

// AST returns the root node.
func (f *CompiledFormula) AST() Node {
	return f.ast
}

// Evaluate walks the cached AST against ctx.
func (f *CompiledFormula) Evaluate(ctx *EvaluationContext) (types.Series, error) {
	return f.evaluator.Evaluate(f.ast, ctx)
}
