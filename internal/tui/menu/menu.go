// ABOUTME: Start menu for the TUI
// ABOUTME: Offers continue, login, register and quit as a huh select

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Choice is a menu entry
type Choice int

const (
	ChoiceContinue Choice = iota
	ChoiceLogin
	ChoiceRegister
	ChoiceQuit
)

// ChoiceSelectedMsg is sent when the player picks an entry
type ChoiceSelectedMsg struct {
	Choice Choice
}

// CancelledMsg is sent when the player leaves the menu
type CancelledMsg struct{}

type option struct {
	label   string
	value   Choice
	enabled bool
}

// Menu is the start screen
type Menu struct {
	options  []option
	selected Choice
	form     *huh.Form
}

// New creates the menu. Continue is offered only with a stored session.
func New(hasSession bool) *Menu {
	m := &Menu{
		options: []option{
			{label: "Continue", value: ChoiceContinue, enabled: hasSession},
			{label: "Log in", value: ChoiceLogin, enabled: true},
			{label: "Register", value: ChoiceRegister, enabled: true},
			{label: "Quit", value: ChoiceQuit, enabled: true},
		},
		selected: ChoiceLogin,
	}
	if hasSession {
		m.selected = ChoiceContinue
	}
	m.form = m.createForm()
	return m
}

func (m *Menu) createForm() *huh.Form {
	var options []huh.Option[Choice]
	for _, opt := range m.enabledOptions() {
		options = append(options, huh.NewOption(opt.label, opt.value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Choice]().
				Title("Welcome to the realm").
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(huh.ThemeBase()).WithShowHelp(false)
}

// enabledOptions returns the enabled entries in display order
func (m *Menu) enabledOptions() []option {
	var enabled []option
	for _, opt := range m.options {
		if opt.enabled {
			enabled = append(enabled, opt)
		}
	}
	return enabled
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "esc" || key.String() == "q") {
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		choice := m.selected
		// a finished form ignores input, so start over for the next visit
		m.form = m.createForm()
		return m, tea.Batch(m.form.Init(), func() tea.Msg { return ChoiceSelectedMsg{Choice: choice} })
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}

// String returns the string representation of a Choice
func (c Choice) String() string {
	switch c {
	case ChoiceContinue:
		return "continue"
	case ChoiceLogin:
		return "login"
	case ChoiceRegister:
		return "register"
	case ChoiceQuit:
		return "quit"
	default:
		return "unknown"
	}
}
