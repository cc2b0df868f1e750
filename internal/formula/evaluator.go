package formula

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-formula/internal/indicator"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// Evaluator walks an AST against an EvaluationContext.
// It holds no per-evaluation state and is safe for concurrent use.
type Evaluator struct {
	registry indicator.FunctionRegistry
}

// NewEvaluator creates an evaluator resolving calls through registry.
// A nil registry falls back to the default function set.
func NewEvaluator(registry indicator.FunctionRegistry) *Evaluator {
	if registry == nil {
		registry = indicator.NewDefaultFunctionRegistry()
	}

	return &Evaluator{registry: registry}
}

// Evaluate produces a series of length ctx.Length() for node.
func (e *Evaluator) Evaluate(node Node, ctx *EvaluationContext) (types.Series, error) {
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "evaluation context is required")
	}

	return e.eval(node, ctx)
}

func (e *Evaluator) eval(node Node, ctx *EvaluationContext) (types.Series, error) {
	switch n := node.(type) {
	case *NumberNode:
		return types.NewSeries(ctx.Length(), n.Value), nil
	case *IdentifierNode:
		series, ok := ctx.Lookup(n.Name)
		if !ok {
			return nil, errors.NewUnknownIdentifierError(n.Name, ctx.Names())
		}

		return append(types.Series(nil), series...), nil
	case *BinaryNode:
		return e.evalBinary(n, ctx)
	case *CallNode:
		return e.evalCall(n, ctx)
	default:
		return nil, errors.Newf(errors.ErrCodeUnknown, "unsupported formula node %T", node)
	}
}

func (e *Evaluator) evalBinary(n *BinaryNode, ctx *EvaluationContext) (types.Series, error) {
	left, err := e.eval(n.Left, ctx)
	if err != nil {
		return nil, err
	}

	right, err := e.eval(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	res := make(types.Series, ctx.Length())

	for i := range res {
		x, y := left[i], right[i]

		switch n.Op {
		case '+':
			res[i] = x + y
		case '-':
			res[i] = x - y
		case '*':
			res[i] = x * y
		case '/':
			if y == 0 {
				res[i] = math.NaN()
			} else {
				res[i] = x / y
			}
		default:
			res[i] = math.NaN()
		}
	}

	return res, nil
}

func (e *Evaluator) evalCall(n *CallNode, ctx *EvaluationContext) (types.Series, error) {
	fn, err := e.registry.GetFunction(n.Name)
	if err != nil {
		return nil, err
	}

	if len(n.Args) < fn.MinArgs || len(n.Args) > fn.MaxArgs {
		return nil, errors.NewArityError(fn.Name, fn.MinArgs, fn.MaxArgs, len(n.Args))
	}

	source, err := e.eval(n.Args[0], ctx)
	if err != nil {
		return nil, err
	}

	rawPeriod, err := e.resolveScalar(n.Args[1], ctx)
	if err != nil {
		return nil, err
	}

	multiplier := optional.None[float64]()

	if len(n.Args) > 2 {
		mult, err := e.resolveScalar(n.Args[2], ctx)
		if err != nil {
			return nil, err
		}

		multiplier = optional.Some(mult)
	}

	return fn.Apply(source, indicator.NormalizePeriod(rawPeriod), multiplier), nil
}

// resolveScalar reduces a period or multiplier argument to one number:
// a literal is used as is, anything else is evaluated and its last element taken.
func (e *Evaluator) resolveScalar(node Node, ctx *EvaluationContext) (float64, error) {
	if num, ok := node.(*NumberNode); ok {
		return num.Value, nil
	}

	series, err := e.eval(node, ctx)
	if err != nil {
		return 0, err
	}

	return series.Last(), nil
}
