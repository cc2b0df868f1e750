package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/rxtech-lab/argo-formula/internal/workspace"
)

// Application states.
const (
	StateMenu = iota
	StateBuiltinSelect
	StatePeriodInput
	StateFormulaInput
	StateStrategyInput
	StateResults
)

// Model is the main Bubble Tea model for the workspace explorer.
type Model struct {
	state        int
	ws           *workspace.Workspace
	menuList     list.Model
	builtinList  list.Model
	input        textinput.Model
	resultsTable table.Model
	builtin      types.IndicatorType
	status       string
	err          error
	width        int
	height       int
}

// NewModel creates a new Model over the given workspace.
func NewModel(ws *workspace.Workspace) Model {
	return Model{
		state:        StateMenu,
		ws:           ws,
		menuList:     NewMenuList(),
		builtinList:  NewBuiltinList(),
		input:        NewFormulaInput(),
		resultsTable: NewResultsTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) inTextInput() bool {
	return m.state == StatePeriodInput || m.state == StateFormulaInput || m.state == StateStrategyInput
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Only quit on 'q' if not in text input mode
			if !m.inTextInput() {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuList.SetSize(msg.Width, msg.Height-4)
		m.builtinList.SetSize(msg.Width, msg.Height-4)
		m.resultsTable.SetWidth(msg.Width)
		m.resultsTable.SetHeight(msg.Height - 8)

		return m, nil

	case RegeneratedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.status = fmt.Sprintf("Generated %d closes", m.ws.Len())
		}

		return m.refreshResults(), nil
	}

	switch m.state {
	case StateMenu:
		return m.updateMenu(msg)
	case StateBuiltinSelect:
		return m.updateBuiltinSelect(msg)
	case StatePeriodInput, StateFormulaInput, StateStrategyInput:
		return m.updateInput(msg)
	case StateResults:
		var cmd tea.Cmd
		m.resultsTable, cmd = m.resultsTable.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StatePeriodInput:
		m.state = StateBuiltinSelect
		m.input.Blur()
	case StateBuiltinSelect, StateFormulaInput, StateStrategyInput, StateResults:
		m.state = StateMenu
		m.input.Blur()
	}

	m.err = nil

	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		item, ok := m.menuList.SelectedItem().(listItem)
		if !ok {
			return m, nil
		}

		m.err = nil
		m.status = ""

		switch item.name {
		case ActionBuiltin:
			m.state = StateBuiltinSelect

			return m, nil
		case ActionCustom:
			return m.focusInput(StateFormulaInput, "ema(close, 12) - ema(close, 26)")
		case ActionStrategy:
			return m.focusInput(StateStrategyInput, "close crosses_above sma(close, 50)")
		case ActionRegenerate:
			return m, m.regenerate()
		case ActionResults:
			m = m.refreshResults()
			m.state = StateResults

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.menuList, cmd = m.menuList.Update(msg)

	return m, cmd
}

func (m Model) updateBuiltinSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.builtinList.SelectedItem().(listItem); ok {
			m.builtin = types.IndicatorType(item.name)

			placeholder := "20"
			if m.builtin == types.IndicatorTypeBollingerBands {
				placeholder = "20, 2"
			}

			return m.focusInput(StatePeriodInput, placeholder)
		}
	}

	var cmd tea.Cmd
	m.builtinList, cmd = m.builtinList.Update(msg)

	return m, cmd
}

func (m Model) focusInput(state int, placeholder string) (tea.Model, tea.Cmd) {
	m.state = state
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()

	return m, textinput.Blink
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		status, err := m.submit(m.input.Value())
		if err != nil {
			m.err = err

			return m, nil
		}

		m.err = nil
		m.status = status
		m.input.Blur()
		m.state = StateMenu

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// submit applies the text input to the workspace for the current state.
func (m Model) submit(value string) (string, error) {
	switch m.state {
	case StatePeriodInput:
		period, multiplier, err := ParsePeriodInput(value)
		if err != nil {
			return "", err
		}

		if m.builtin != types.IndicatorTypeBollingerBands {
			multiplier = optional.None[float64]()
		}

		ind, err := m.ws.AddBuiltinIndicator(m.builtin, period, multiplier)
		if err != nil {
			return "", err
		}

		return "Added " + ind.Name, nil

	case StateFormulaInput:
		ind, err := m.ws.AddCustomIndicator(value)
		if err != nil {
			return "", err
		}

		return "Added " + ind.Name, nil

	case StateStrategyInput:
		left, op, right, err := ParseStrategyInput(value)
		if err != nil {
			return "", err
		}

		st, err := m.ws.AddStrategy(left, op, right)
		if err != nil {
			return "", err
		}

		return "Added strategy " + st.Name, nil
	}

	return "", nil
}

// regenerate returns a command that draws a new price series.
func (m Model) regenerate() tea.Cmd {
	ws := m.ws

	return func() tea.Msg {
		return RegeneratedMsg{Err: ws.Regenerate(context.Background())}
	}
}

// refreshResults recomputes overlays and signals into the results table.
func (m Model) refreshResults() Model {
	overlays, err := m.ws.Overlays()
	if err != nil {
		m.err = err

		return m
	}

	signals, err := m.ws.Signals()
	if err != nil {
		m.err = err

		return m
	}

	m.resultsTable.SetRows(BuildResultRows(overlays, m.ws.Strategies(), signals))

	return m
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateMenu:
		s.WriteString(m.menuList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render(fmt.Sprintf("%d closes | %d indicators | %d strategies | Enter: select, q: quit",
			m.ws.Len(), len(m.ws.Indicators()), len(m.ws.Strategies()))))

	case StateBuiltinSelect:
		s.WriteString(m.builtinList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, Esc to go back"))

	case StatePeriodInput:
		s.WriteString(TitleStyle.Render("Indicator Parameters"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Enter the period for %s:\n\n", m.builtin))
		s.WriteString(m.input.View())
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Esc to go back"))

	case StateFormulaInput:
		s.WriteString(TitleStyle.Render("Custom Formula"))
		s.WriteString("\n\n")
		s.WriteString(m.input.View())
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Esc to go back"))

	case StateStrategyInput:
		s.WriteString(TitleStyle.Render("New Strategy"))
		s.WriteString("\n\n")
		s.WriteString("Enter left operator right (left defaults to close):\n\n")
		s.WriteString(m.input.View())
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Esc to go back"))

	case StateResults:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Results (%d closes)", m.ws.Len())))
		s.WriteString("\n\n")

		if len(m.resultsTable.Rows()) == 0 {
			s.WriteString("No indicators or strategies yet.\n")
		} else {
			s.WriteString(m.resultsTable.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("q: quit | Esc: back"))
	}

	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.status != "" {
		s.WriteString("\n\n")
		s.WriteString(StatusStyle.Render(m.status))
	}

	return s.String()
}
