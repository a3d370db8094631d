package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/i474232898/trip-weather/internal/trip"
)

// AppState represents the current state of the application
type AppState int

const (
	StateForm    AppState = iota // Editing trip details
	StateLoading                 // Waiting for the forecast
	StateResult                  // Showing the forecast
	StateError                   // Showing a submission error
)

// Form fields, in tab order.
const (
	fieldCity = iota
	fieldState
	fieldStart
	fieldEnd
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"City:",
	"State (e.g., CA):",
	"Start (optional):",
	"End (optional):",
}

// Submitter is the trip submission entry point the form calls.
type Submitter interface {
	Submit(ctx context.Context, req trip.SubmitRequest) (*trip.Result, error)
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int

	inputs    []textinput.Model
	focus     int
	user      string
	submitter Submitter

	spinner spinner.Model

	result  string
	errText string
}

// NewModel creates a new application model. user may be empty.
func NewModel(submitter Submitter, user string) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 25
		ti.CharLimit = 60
		inputs[i] = ti
	}
	inputs[fieldState].CharLimit = 2
	inputs[fieldState].Width = 4
	inputs[fieldStart].Placeholder = "YYYY-MM-DD"
	inputs[fieldStart].CharLimit = 10
	inputs[fieldEnd].Placeholder = "YYYY-MM-DD"
	inputs[fieldEnd].CharLimit = 10
	inputs[fieldCity].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		state:     StateForm,
		inputs:    inputs,
		focus:     fieldCity,
		user:      user,
		submitter: submitter,
		spinner:   s,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tripSubmittedMsg:
		if msg.err != nil {
			m.state = StateError
			m.errText = trip.Message(msg.err)
			m.result = ""
		} else {
			m.state = StateResult
			m.result = msg.text
			m.errText = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

		switch m.state {
		case StateLoading:
			return m, nil
		case StateResult, StateError:
			// Back to the form, keeping what was typed. The key is applied to the
			// form too, except enter, which would resubmit right away.
			m.state = StateForm
			focusCmd := m.setFocus(m.focus)
			if msg.Type == tea.KeyEnter {
				return m, focusCmd
			}
			updated, cmd := m.handleFormKey(msg)
			return updated, tea.Batch(focusCmd, cmd)
		}
		return m.handleFormKey(msg)
	}

	return m.updateFocused(msg)
}

// handleFormKey handles keyboard input in form state
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if m.submitter == nil {
			return m, nil
		}
		m.state = StateLoading
		m.result = ""
		m.errText = ""
		return m, tea.Batch(m.spinner.Tick, submitTrip(m.submitter, m.request()))
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != StateForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return cmd
}

func (m Model) request() trip.SubmitRequest {
	return trip.SubmitRequest{
		City:      m.inputs[fieldCity].Value(),
		State:     m.inputs[fieldState].Value(),
		StartDate: m.inputs[fieldStart].Value(),
		EndDate:   m.inputs[fieldEnd].Value(),
		User:      m.user,
	}
}

// View renders the application
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Welcome to Weather Wizard!"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Enter your trip details below to fetch the weather forecast for your upcoming trip."))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		label := labelStyle
		if i == m.focus && m.state == StateForm {
			label = focusedLabelStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[i]), input.View()))
		b.WriteString("\n")
	}

	switch m.state {
	case StateLoading:
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" Fetching forecast...\n")
	case StateResult:
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(strings.TrimRight(m.result, "\n")))
		b.WriteString("\n")
	case StateError:
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}

	help := "tab/shift+tab: move • enter: submit • esc: quit"
	if m.state == StateResult || m.state == StateError {
		help = "any key: edit trip • esc: quit"
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}
