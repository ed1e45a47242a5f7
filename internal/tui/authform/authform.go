// ABOUTME: Login and registration forms as bubbletea models
// ABOUTME: Uses huh inputs with password echo and a heading for the current form

package authform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/realm-client/internal/tui/styles"
)

// Kind selects which form is shown
type Kind int

const (
	KindLogin Kind = iota
	KindRegister
)

// SubmittedMsg is sent when the player submits the form
type SubmittedMsg struct {
	Kind     Kind
	Username string
	Password string
	Confirm  string
}

// CancelledMsg is sent when the player leaves the form
type CancelledMsg struct{}

// Form collects credentials
type Form struct {
	kind  Kind
	form  *huh.Form
	err   string
	width int

	username string
	password string
	confirm  string
}

// createTheme returns a huh theme matching the TUI palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	gray := lipgloss.Color("#9CA3AF")
	light := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(light)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// NewLogin creates a login form, prefilled with the last username used
func NewLogin(username string) *Form {
	f := &Form{kind: KindLogin, username: username}
	f.form = f.createForm()
	return f
}

// NewRegister creates a registration form
func NewRegister() *Form {
	f := &Form{kind: KindRegister}
	f.form = f.createForm()
	return f
}

// Kind returns which form this is
func (f *Form) Kind() Kind {
	return f.kind
}

// Username returns the username typed so far
func (f *Form) Username() string {
	return f.username
}

func (f *Form) createForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Username").
			Placeholder("player").
			Value(&f.username).
			Validate(required("username")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&f.password).
			Validate(required("password")),
	}

	title := "Log in"
	description := "Enter your credentials and press Enter"
	if f.kind == KindRegister {
		fields = append(fields, huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&f.confirm))
		title = "Register"
		description = "Choose a username and password"
	}

	return huh.NewForm(
		huh.NewGroup(fields...).
			Title(title).
			Description(description),
	).WithTheme(createTheme()).WithShowHelp(false)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// SetError shows msg under the form and lets the player edit and resubmit
func (f *Form) SetError(msg string) {
	f.err = msg
	f.password = ""
	f.confirm = ""
	f.form = f.createForm()
	if f.width > 0 {
		f.form = f.form.WithWidth(f.width)
	}
}

// Error returns the message shown under the form
func (f *Form) Error() string {
	return f.err
}

// SetWidth sets the form width for proper rendering
func (f *Form) SetWidth(width int) {
	f.width = width
	f.form = f.form.WithWidth(width)
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f, f.submit()
	}
	return f, cmd
}

func (f *Form) submit() tea.Cmd {
	msg := SubmittedMsg{
		Kind:     f.kind,
		Username: f.username,
		Password: f.password,
		Confirm:  f.confirm,
	}
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(f.form.View())
	if f.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render(f.err))
	}
	return sb.String()
}
