package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/internal/workspace"
	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// Menu actions.
const (
	ActionBuiltin    = "Add built-in indicator"
	ActionCustom     = "Add custom formula"
	ActionStrategy   = "Add strategy"
	ActionRegenerate = "Regenerate data"
	ActionResults    = "View results"
)

// listItem implements list.Item interface for menu and indicator lists.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

func newList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewMenuList creates the main action list.
func NewMenuList() list.Model {
	return newList("Argo Formula", []list.Item{
		listItem{name: ActionBuiltin, description: "SMA, EMA or Bollinger Bands over close"},
		listItem{name: ActionCustom, description: "Any formula, e.g. ema(close, 12) - ema(close, 26)"},
		listItem{name: ActionStrategy, description: "left operator right, e.g. close crosses_above sma(close, 50)"},
		listItem{name: ActionRegenerate, description: "Generate a new random price series"},
		listItem{name: ActionResults, description: "Overlays and signals for the current series"},
	})
}

// NewBuiltinList creates the list of built-in indicator types.
func NewBuiltinList() list.Model {
	return newList("Select Indicator", []list.Item{
		listItem{name: string(types.IndicatorTypeSMA), description: "Simple moving average"},
		listItem{name: string(types.IndicatorTypeEMA), description: "Exponential moving average"},
		listItem{name: string(types.IndicatorTypeBollingerBands), description: "Bollinger Bands (period, multiplier)"},
	})
}

// NewFormulaInput creates the text input shared by every entry screen.
func NewFormulaInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "sma(close, 50)"
	ti.CharLimit = 256
	ti.Width = 70
	ti.Prompt = "> "

	return ti
}

// ParsePeriodInput parses "period" or "period, multiplier".
func ParsePeriodInput(input string) (int, optional.Option[float64], error) {
	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 || len(fields) > 2 {
		return 0, optional.None[float64](), errors.New(errors.ErrCodeInvalidPeriod, "expected period or period,multiplier")
	}

	period, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, optional.None[float64](), errors.Wrap(errors.ErrCodeInvalidPeriod, "invalid period", err)
	}

	if len(fields) == 1 {
		return period, optional.None[float64](), nil
	}

	mult, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, optional.None[float64](), errors.Wrap(errors.ErrCodeInvalidMultiplier, "invalid multiplier", err)
	}

	return period, optional.Some(mult), nil
}

// strategyOperators is ordered so two-character operators match before their prefixes.
var strategyOperators = []types.Operator{
	types.OperatorCrossesAbove,
	types.OperatorCrossesBelow,
	types.OperatorGreaterOrEqual,
	types.OperatorLessOrEqual,
	types.OperatorEqual,
	types.OperatorGreater,
	types.OperatorLess,
}

// ParseStrategyInput splits "left operator right" into its parts.
// The left side may be omitted, in which case the workspace defaults it to close.
func ParseStrategyInput(input string) (string, string, string, error) {
	padded := " " + strings.TrimSpace(input) + " "

	for _, op := range strategyOperators {
		token := " " + string(op) + " "

		if idx := strings.Index(padded, token); idx >= 0 {
			left := strings.TrimSpace(padded[:idx])
			right := strings.TrimSpace(padded[idx+len(token):])

			return left, string(op), right, nil
		}
	}

	return "", "", "", errors.New(errors.ErrCodeInvalidOperator, "expected 'left operator right' with a space-separated operator")
}

// NewResultsTable creates the table listing overlays and strategies.
func NewResultsTable() table.Model {
	columns := []table.Column{
		{Title: "Kind", Width: 10},
		{Title: "Name", Width: 40},
		{Title: "Last", Width: 18},
		{Title: "Signals", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// BuildResultRows summarises overlays and per-strategy signal counts.
func BuildResultRows(overlays []types.Overlay, strategies []workspace.Strategy, signals []types.Signal) []table.Row {
	rows := make([]table.Row, 0, len(overlays)+len(strategies))

	for _, o := range overlays {
		n := len(o.Series)
		rows = append(rows, table.Row{
			"overlay",
			o.Name,
			FormatValueWithTrend(o.Series.At(n-1), o.Series.At(n-2)),
			"",
		})
	}

	buys := make(map[string]int, len(strategies))
	sells := make(map[string]int, len(strategies))

	for _, s := range signals {
		if s.Kind == types.SignalKindBuy {
			buys[s.Strategy]++
		} else {
			sells[s.Strategy]++
		}
	}

	for _, st := range strategies {
		rows = append(rows, table.Row{
			"strategy",
			st.Name,
			"",
			fmt.Sprintf("%d▲ %d▼", buys[st.ID], sells[st.ID]),
		})
	}

	return rows
}
