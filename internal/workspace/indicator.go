package workspace

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-formula/internal/formula"
	"github.com/rxtech-lab/argo-formula/internal/indicator"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
	"go.uber.org/zap"
)

// MinBollingerMultiplier is the smallest multiplier accepted for built-in Bollinger indicators.
const MinBollingerMultiplier = 0.5

// Indicator is a registered chart overlay definition.
type Indicator struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Type       types.IndicatorType `json:"type"`
	Color      string              `json:"color"`
	Formula    string              `json:"formula"`
	Period     int                 `json:"period,omitempty"`
	Multiplier float64             `json:"multiplier,omitempty"`
}

// AddBuiltinIndicator registers an SMA, EMA or Bollinger indicator over close.
// Period is coerced to at least 1. The Bollinger multiplier defaults to 2 and is
// raised to MinBollingerMultiplier when smaller.
func (w *Workspace) AddBuiltinIndicator(kind types.IndicatorType, period int, multiplier optional.Option[float64]) (Indicator, error) {
	period = max(1, period)

	ind := Indicator{
		ID:         newID("ind"),
		Type:       kind,
		Formula:    formula.SeriesClose,
		Period:     period,
		Multiplier: 0,
	}

	switch kind {
	case types.IndicatorTypeSMA:
		ind.Name = fmt.Sprintf("SMA(%d)", period)
	case types.IndicatorTypeEMA:
		ind.Name = fmt.Sprintf("EMA(%d)", period)
	case types.IndicatorTypeBollingerBands:
		ind.Multiplier = NormalizeMultiplier(multiplier)
		ind.Name = fmt.Sprintf("BOLL(%d,%s)", period, strconv.FormatFloat(ind.Multiplier, 'f', -1, 64))
	case types.IndicatorTypeExpression:
		return Indicator{}, errors.New(errors.ErrCodeInvalidType, "expression indicators are added with AddCustomIndicator")
	default:
		return Indicator{}, errors.Newf(errors.ErrCodeInvalidType, "unsupported indicator type: %s", kind)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	ind.Color = ColorFor(len(w.indicators))
	w.indicators = append(w.indicators, ind)

	w.log.Debug("Indicator added",
		zap.String("id", ind.ID),
		zap.String("name", ind.Name),
	)

	return ind, nil
}

// NormalizeMultiplier applies the Bollinger multiplier default and floor.
// Missing, zero and NaN values fall back to the default.
func NormalizeMultiplier(multiplier optional.Option[float64]) float64 {
	m := multiplier.TakeOr(indicator.DefaultMultiplier)
	if m == 0 || math.IsNaN(m) {
		m = indicator.DefaultMultiplier
	}

	return math.Max(MinBollingerMultiplier, m)
}

// AddCustomIndicator registers a formula as an indicator named by its text.
// The formula must compile and evaluate against the current series; otherwise
// the error is returned unchanged and nothing is registered.
func (w *Workspace) AddCustomIndicator(source string) (Indicator, error) {
	raw := source
	source = strings.TrimSpace(source)
	if source == "" {
		return Indicator{}, errors.New(errors.ErrCodeEmptyFormula, "formula is empty")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.validateLocked(raw); err != nil {
		w.metrics.RecordRejected("indicator")
		w.log.Warn("Rejected custom indicator",
			zap.String("formula", source),
			zap.Error(err),
		)

		return Indicator{}, err
	}

	ind := Indicator{
		ID:         newID("ind"),
		Name:       source,
		Type:       types.IndicatorTypeExpression,
		Color:      ColorFor(len(w.indicators)),
		Formula:    source,
		Period:     0,
		Multiplier: 0,
	}
	w.indicators = append(w.indicators, ind)

	w.log.Debug("Custom indicator added",
		zap.String("id", ind.ID),
		zap.String("formula", source),
	)

	return ind, nil
}

// RemoveIndicator deletes the indicator with the given id.
func (w *Workspace) RemoveIndicator(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := slices.IndexFunc(w.indicators, func(ind Indicator) bool { return ind.ID == id })
	if idx < 0 {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator not found: %s", id)
	}

	w.indicators = slices.Delete(w.indicators, idx, idx+1)

	return nil
}

// Indicators returns the registered indicators in insertion order.
func (w *Workspace) Indicators() []Indicator {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return slices.Clone(w.indicators)
}

// Overlays evaluates every indicator over the current series.
// Bollinger indicators produce upper, mid and lower overlays in that order.
func (w *Workspace) Overlays() ([]types.Overlay, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	overlays := make([]types.Overlay, 0, len(w.indicators))

	for _, ind := range w.indicators {
		base, err := w.evaluateLocked(ind.Formula, "overlay")
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to evaluate indicator %s", ind.Name)
		}

		switch ind.Type {
		case types.IndicatorTypeSMA:
			overlays = append(overlays, types.Overlay{Name: ind.Name, Color: ind.Color, Series: indicator.SMA(base, ind.Period)})
		case types.IndicatorTypeEMA:
			overlays = append(overlays, types.Overlay{Name: ind.Name, Color: ind.Color, Series: indicator.EMA(base, ind.Period)})
		case types.IndicatorTypeBollingerBands:
			overlays = append(overlays, bollingerOverlays(ind, indicator.Boll(base, ind.Period, ind.Multiplier))...)
		default:
			overlays = append(overlays, types.Overlay{Name: ind.Name, Color: ind.Color, Series: base})
		}
	}

	return overlays, nil
}

func bollingerOverlays(ind Indicator, bands indicator.BollingerResult) []types.Overlay {
	return []types.Overlay{
		{Name: ind.Name + " U", Color: ind.Color, Series: bands.Upper},
		{Name: ind.Name + " M", Color: Shade(ind.Color, -10), Series: bands.Mid},
		{Name: ind.Name + " L", Color: Shade(ind.Color, -20), Series: bands.Lower},
	}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
