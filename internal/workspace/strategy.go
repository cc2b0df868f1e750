package workspace

import (
	"slices"

	"github.com/rxtech-lab/argo-formula/internal/strategy"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
	"go.uber.org/zap"
)

// Strategy is a registered rule with its display attributes.
type Strategy struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Color string        `json:"color"`
	Rule  strategy.Rule `json:"rule"`
}

// AddStrategy registers a rule comparing left and right formulas.
// A blank left side means close. Both sides must compile and evaluate against
// the current series, otherwise the error is returned and nothing is registered.
func (w *Workspace) AddStrategy(left, operator, right string) (Strategy, error) {
	rule, err := strategy.NewRule(left, operator, right)
	if err != nil {
		return Strategy{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, side := range []string{rule.Left, rule.Right} {
		if err := w.validateLocked(side); err != nil {
			w.metrics.RecordRejected("strategy")
			w.log.Warn("Rejected strategy",
				zap.String("name", rule.Name()),
				zap.Error(err),
			)

			return Strategy{}, err
		}
	}

	st := Strategy{
		ID:    newID("st"),
		Name:  rule.Name(),
		Color: ColorFor(len(w.strategies)),
		Rule:  rule,
	}
	w.strategies = append(w.strategies, st)

	w.log.Debug("Strategy added",
		zap.String("id", st.ID),
		zap.String("name", st.Name),
	)

	return st, nil
}

// RemoveStrategy deletes the strategy with the given id.
func (w *Workspace) RemoveStrategy(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := slices.IndexFunc(w.strategies, func(st Strategy) bool { return st.ID == id })
	if idx < 0 {
		return errors.Newf(errors.ErrCodeStrategyNotFound, "strategy not found: %s", id)
	}

	w.strategies = slices.Delete(w.strategies, idx, idx+1)

	return nil
}

// Strategies returns the registered strategies in insertion order.
func (w *Workspace) Strategies() []Strategy {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return slices.Clone(w.strategies)
}

// Signals scans every strategy over the current series.
// Signals are grouped by strategy in registration order, ascending by index within each group.
func (w *Workspace) Signals() ([]types.Signal, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	signals := make([]types.Signal, 0)

	for _, st := range w.strategies {
		left, err := w.evaluateLocked(st.Rule.Left, "strategy")
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to evaluate strategy %s", st.Name)
		}

		right, err := w.evaluateLocked(st.Rule.Right, "strategy")
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to evaluate strategy %s", st.Name)
		}

		found := st.Rule.Signals(left, right)
		for i := range found {
			found[i].Strategy = st.ID
			found[i].Color = st.Color
		}

		w.metrics.RecordSignals(found)
		signals = append(signals, found...)
	}

	return signals, nil
}
