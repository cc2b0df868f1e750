// Package workspace hosts one interactive session: a price series, the indicators
// and strategies defined over it, and the formula cache they share.
package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-formula/internal/formula"
	"github.com/rxtech-lab/argo-formula/internal/indicator"
	"github.com/rxtech-lab/argo-formula/internal/logger"
	"github.com/rxtech-lab/argo-formula/internal/metrics"
	"github.com/rxtech-lab/argo-formula/internal/pricegen"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
	"go.uber.org/zap"
)

// PriceSource produces close-price series for Regenerate.
type PriceSource interface {
	Generate(ctx context.Context, points int, volatility float64) ([]float64, error)
}

// Option configures a Workspace.
type Option func(*Workspace)

func WithLogger(log *logger.Logger) Option {
	return func(w *Workspace) {
		w.log = log
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Workspace) {
		w.metrics = m
	}
}

func WithPriceSource(source PriceSource) Option {
	return func(w *Workspace) {
		w.source = source
	}
}

func WithRegistry(registry indicator.FunctionRegistry) Option {
	return func(w *Workspace) {
		w.registry = registry
	}
}

// WithDataParams sets the points and volatility passed to the price source.
func WithDataParams(points int, volatility float64) Option {
	return func(w *Workspace) {
		w.points = points
		w.volatility = volatility
	}
}

// Workspace is safe for concurrent use.
type Workspace struct {
	log        *logger.Logger
	metrics    *metrics.Metrics
	source     PriceSource
	registry   indicator.FunctionRegistry
	cache      *formula.Cache
	evalCtx    *formula.EvaluationContext
	points     int
	volatility float64
	indicators []Indicator
	strategies []Strategy
	mu         sync.RWMutex
}

// New creates an empty workspace with no price data.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		log:        nil,
		metrics:    nil,
		source:     nil,
		registry:   nil,
		cache:      nil,
		evalCtx:    formula.NewEvaluationContext(nil),
		points:     pricegen.DefaultPoints,
		volatility: pricegen.DefaultVolatility,
		indicators: nil,
		strategies: nil,
		mu:         sync.RWMutex{},
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.log == nil {
		w.log = logger.NewNopLogger()
	}

	w.log = w.log.Component("workspace")

	if w.registry == nil {
		w.registry = indicator.NewDefaultFunctionRegistry()
	}

	var cacheOpts []formula.CacheOption
	if w.metrics != nil {
		cacheOpts = append(cacheOpts, formula.WithObserver(w.metrics))
	}

	w.cache = formula.NewCache(w.registry, cacheOpts...)

	return w
}

// SetPrices replaces the close series. Existing definitions are kept.
func (w *Workspace) SetPrices(closes []float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.setPricesLocked(closes)
}

func (w *Workspace) setPricesLocked(closes []float64) {
	w.evalCtx = formula.NewEvaluationContext(closes)
	w.metrics.SetSeriesLength(len(closes))
	w.log.Debug("Price series replaced", zap.Int("points", len(closes)))
}

// SetDataParams changes the points and volatility used by the next Regenerate.
func (w *Workspace) SetDataParams(points int, volatility float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.points = points
	w.volatility = volatility
}

// Regenerate asks the price source for a fresh series, clamping the parameters first.
func (w *Workspace) Regenerate(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.source == nil {
		return errors.New(errors.ErrCodeDataSourceUnavailable, "no price source configured")
	}

	points := pricegen.ClampPoints(w.points)
	volatility := pricegen.ClampVolatility(w.volatility)

	closes, err := w.source.Generate(ctx, points, volatility)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to generate prices", err)
	}

	w.setPricesLocked(closes)
	w.log.Info("Price series regenerated",
		zap.Int("points", points),
		zap.Float64("volatility", volatility),
	)

	return nil
}

// Closes returns a copy of the current close series.
func (w *Workspace) Closes() types.Series {
	w.mu.RLock()
	defer w.mu.RUnlock()

	closes, _ := w.evalCtx.Lookup(formula.SeriesClose)

	return append(types.Series(nil), closes...)
}

// Len returns the number of samples in the current series.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.evalCtx.Length()
}

// Evaluate compiles source through the session cache and evaluates it over the current series.
func (w *Workspace) Evaluate(source string) (types.Series, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.evaluateLocked(source, "formula")
}

// CacheSize returns the number of distinct formulas compiled in this session.
func (w *Workspace) CacheSize() int {
	return w.cache.Len()
}

func (w *Workspace) evaluateLocked(source, target string) (types.Series, error) {
	start := time.Now()
	defer func() {
		w.metrics.ObserveEvaluation(target, time.Since(start))
	}()

	return w.cache.Evaluate(source, w.evalCtx)
}

// validateLocked compiles and dry-evaluates source so unknown names and arity
// problems are reported at definition time.
func (w *Workspace) validateLocked(source string) error {
	_, err := w.cache.Evaluate(source, w.evalCtx)

	return err
}
