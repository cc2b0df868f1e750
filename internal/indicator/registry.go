package indicator

import (
	"sort"
	"strings"
	"sync"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// Function names exposed to formulas.
const (
	FunctionSMA       = "sma"
	FunctionEMA       = "ema"
	FunctionBollUpper = "boll_upper"
	FunctionBollMid   = "boll_mid"
	FunctionBollLower = "boll_lower"
)

// ApplyFunc computes a function over an already evaluated source series.
type ApplyFunc func(series types.Series, period int, multiplier optional.Option[float64]) types.Series

// Function describes a windowed function callable from a formula as name(expr, period[, multiplier]).
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int
	Apply   ApplyFunc
}

// AcceptsMultiplier reports whether the function takes a third multiplier argument.
func (f Function) AcceptsMultiplier() bool {
	return f.MaxArgs >= 3
}

// FunctionRegistry manages the functions available to formulas.
// Lookups are case-insensitive.
type FunctionRegistry interface {
	RegisterFunction(fn Function) error
	GetFunction(name string) (Function, error)
	ListFunctions() []string
}

// FunctionRegistryV1 is a map-backed FunctionRegistry safe for concurrent use.
type FunctionRegistryV1 struct {
	functions map[string]Function
	mu        sync.RWMutex
}

// NewFunctionRegistry creates an empty function registry.
func NewFunctionRegistry() FunctionRegistry {
	return &FunctionRegistryV1{
		functions: make(map[string]Function),
		mu:        sync.RWMutex{},
	}
}

// NewDefaultFunctionRegistry creates a registry holding sma, ema and the three Bollinger bands.
func NewDefaultFunctionRegistry() FunctionRegistry {
	r := NewFunctionRegistry()

	for _, fn := range defaultFunctions() {
		// names are unique, registration cannot fail
		_ = r.RegisterFunction(fn)
	}

	return r
}

// RegisterFunction adds a function to the registry.
func (r *FunctionRegistryV1) RegisterFunction(fn Function) error {
	if fn.Name == "" || fn.Apply == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "RegisterFunction: function needs a name and an implementation")
	}

	if fn.MinArgs < 2 || fn.MaxArgs < fn.MinArgs || fn.MaxArgs > 3 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "RegisterFunction: invalid arity %d-%d for %s", fn.MinArgs, fn.MaxArgs, fn.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(fn.Name)
	if _, exists := r.functions[key]; exists {
		return errors.Newf(errors.ErrCodeInvalidParameter, "RegisterFunction: function with name %s already registered", fn.Name)
	}

	r.functions[key] = fn

	return nil
}

// GetFunction retrieves a function by name, ignoring case.
func (r *FunctionRegistryV1) GetFunction(name string) (Function, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, exists := r.functions[strings.ToLower(name)]
	if !exists {
		return Function{}, errors.NewUnknownFunctionError(name)
	}

	return fn, nil
}

// ListFunctions returns the sorted names of all registered functions.
func (r *FunctionRegistryV1) ListFunctions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func defaultFunctions() []Function {
	band := func(pick func(BollingerResult) types.Series) ApplyFunc {
		return func(series types.Series, period int, multiplier optional.Option[float64]) types.Series {
			mult := DefaultMultiplier
			if multiplier.IsSome() {
				mult = multiplier.Unwrap()
			}

			return pick(Boll(series, period, mult))
		}
	}

	return []Function{
		{
			Name:    FunctionSMA,
			MinArgs: 2,
			MaxArgs: 2,
			Apply: func(series types.Series, period int, _ optional.Option[float64]) types.Series {
				return SMA(series, period)
			},
		},
		{
			Name:    FunctionEMA,
			MinArgs: 2,
			MaxArgs: 2,
			Apply: func(series types.Series, period int, _ optional.Option[float64]) types.Series {
				return EMA(series, period)
			},
		},
		{
			Name:    FunctionBollUpper,
			MinArgs: 2,
			MaxArgs: 3,
			Apply:   band(func(b BollingerResult) types.Series { return b.Upper }),
		},
		{
			Name:    FunctionBollMid,
			MinArgs: 2,
			MaxArgs: 3,
			Apply:   band(func(b BollingerResult) types.Series { return b.Mid }),
		},
		{
			Name:    FunctionBollLower,
			MinArgs: 2,
			MaxArgs: 3,
			Apply:   band(func(b BollingerResult) types.Series { return b.Lower }),
		},
	}
}
