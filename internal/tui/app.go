// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/markalston/realm-client/internal/controller"
	"github.com/markalston/realm-client/internal/session"
	"github.com/markalston/realm-client/internal/tui/authform"
	"github.com/markalston/realm-client/internal/tui/dashboard"
	"github.com/markalston/realm-client/internal/tui/debuglog"
	"github.com/markalston/realm-client/internal/tui/icons"
	"github.com/markalston/realm-client/internal/tui/menu"
	"github.com/markalston/realm-client/internal/tui/styles"
	"github.com/markalston/realm-client/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenDashboard
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
	maxFormWidth     = 60
)

// Deps are the services the TUI drives
type Deps struct {
	Auth    controller.AuthAPI
	Game    controller.GameAPI
	Session *session.Session
	// PollInterval refreshes the dashboard periodically when positive
	PollInterval time.Duration
}

// actionDoneMsg is sent when a controller call returns
type actionDoneMsg struct {
	action string
	err    error
}

// pollStoppedMsg is sent when the dashboard poll loop exits
type pollStoppedMsg struct{ err error }

// App is the root model for the TUI
type App struct {
	ctx    context.Context
	deps   Deps
	bridge *bridge

	login     *controller.LoginController
	register  *controller.RegisterController
	resources *controller.ResourceController

	screen    Screen
	width     int
	height    int
	menu      *menu.Menu
	form      *authform.Form
	dashboard *dashboard.Dashboard

	spinner    spinner.Model
	help       help.Model
	keys       dashboardKeys
	formKeys   formKeys
	busy       int
	status     string
	level      widgets.StatusLevel
	player     string
	stopPoll   context.CancelFunc
	lastUpdate time.Time
}

// New creates the root model. ctx bounds every request the TUI makes.
func New(ctx context.Context, deps Deps) *App {
	b := newBridge()

	h := help.New()
	h.Styles.ShortKey = styles.KeyStyle
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.Muted)

	a := &App{
		ctx:       ctx,
		deps:      deps,
		bridge:    b,
		login:     controller.NewLoginController(deps.Auth, deps.Session, b, b),
		register:  controller.NewRegisterController(deps.Auth, b, b),
		resources: controller.NewResourceController(deps.Game, deps.Session, b, b),
		screen:    ScreenMenu,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
		help:     h,
		keys:     newDashboardKeys(),
		formKeys: newFormKeys(),
	}
	a.menu = menu.New(a.hasSession())
	return a
}

// Screen returns the screen being shown
func (a *App) Screen() Screen {
	return a.screen
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.menu.Init(), a.spinner.Tick, a.waitForEvent())
}

// waitForEvent delivers the next controller event to Update
func (a *App) waitForEvent() tea.Cmd {
	events := a.bridge.events
	done := a.ctx.Done()
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.dashboard != nil {
			a.dashboard.SetSize(a.dashboardWidth(), a.contentHeight())
		}
		if a.form != nil {
			a.form.SetWidth(a.formWidth())
		}
		if a.menu != nil {
			a.menu.Update(msg)
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}

		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenLogin, ScreenRegister:
			return a.updateForm(msg)
		case ScreenDashboard:
			return a.updateDashboard(msg)
		}

	case menu.ChoiceSelectedMsg:
		return a.handleChoice(msg.Choice)

	case menu.CancelledMsg:
		return a, a.quit()

	case authform.SubmittedMsg:
		return a.handleSubmit(msg)

	case authform.CancelledMsg:
		a.clearStatus()
		return a, a.showMenu()

	case actionDoneMsg:
		if a.busy > 0 {
			a.busy--
		}
		if msg.err != nil {
			slog.Debug("Action finished with error", "action", msg.action, "error", msg.err)
		}
		return a, nil

	case pollStoppedMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			slog.Warn("Resource polling stopped", "error", msg.err)
		}
		return a, nil

	case errorMsg:
		return a, tea.Batch(a.showError(msg.text), a.waitForEvent())

	case failureMsg:
		return a, tea.Batch(a.showError(controller.MsgServerError), a.waitForEvent())

	case statusMsg:
		a.setStatus(msg.text, widgets.StatusNeutral)
		return a, a.waitForEvent()

	case alertMsg:
		a.setStatus(msg.text, widgets.StatusInfo)
		return a, a.waitForEvent()

	case resourcesMsg:
		if a.dashboard != nil {
			a.dashboard.SetResources(msg.state)
			a.lastUpdate = time.Now()
		}
		return a, a.waitForEvent()

	case navigateMsg:
		cmd := a.navigate(msg.url)
		return a, tea.Batch(cmd, a.waitForEvent())

	default:
		// huh forms rely on their own internal messages
		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenLogin, ScreenRegister:
			return a.updateForm(msg)
		}
	}

	return a, nil
}

func (a *App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		return a, nil
	}
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		return a, nil
	}
	model, cmd := a.form.Update(msg)
	a.form = model.(*authform.Form)
	return a, cmd
}

func (a *App) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.quit()
	case key.Matches(msg, a.keys.Logout):
		return a, a.logout()
	case key.Matches(msg, a.keys.Collect):
		a.clearStatus()
		return a, a.run("collect", a.resources.Collect)
	case key.Matches(msg, a.keys.Refresh):
		return a, a.run("load", a.resources.Load)
	}

	for building, binding := range a.keys.upgrades() {
		if key.Matches(msg, binding) {
			a.clearStatus()
			return a, a.run("upgrade", func(ctx context.Context) error {
				return a.resources.Upgrade(ctx, building)
			})
		}
	}
	return a, nil
}

func (a *App) handleChoice(choice menu.Choice) (tea.Model, tea.Cmd) {
	a.clearStatus()
	switch choice {
	case menu.ChoiceContinue:
		return a, a.enterDashboard()
	case menu.ChoiceLogin:
		return a, a.showLogin(a.deps.Session.LastUsername(a.ctx))
	case menu.ChoiceRegister:
		return a, a.showRegister()
	default:
		return a, a.quit()
	}
}

func (a *App) handleSubmit(msg authform.SubmittedMsg) (tea.Model, tea.Cmd) {
	a.clearStatus()
	if msg.Kind == authform.KindRegister {
		return a, a.run("register", func(ctx context.Context) error {
			return a.register.Submit(ctx, msg.Username, msg.Password, msg.Confirm)
		})
	}
	return a, a.run("login", func(ctx context.Context) error {
		return a.login.Submit(ctx, msg.Username, msg.Password)
	})
}

// run calls a controller in a command and counts it as pending until it returns
func (a *App) run(action string, fn func(context.Context) error) tea.Cmd {
	a.busy++
	ctx := a.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

// navigate switches screens for a redirect reported by a controller
func (a *App) navigate(target string) tea.Cmd {
	if isLoginPath(target) {
		username := ""
		if a.form != nil {
			username = a.form.Username()
		}
		return a.showLogin(username)
	}
	if a.screen == ScreenLogin {
		return a.enterDashboard()
	}
	slog.Debug("Ignoring navigation", "url", target, "screen", a.screen)
	return nil
}

func isLoginPath(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return strings.TrimSuffix(u.Path, "/") == controller.DefaultLoginPath
}

func (a *App) showMenu() tea.Cmd {
	a.form = nil
	a.screen = ScreenMenu
	a.menu = menu.New(a.hasSession())
	return a.menu.Init()
}

func (a *App) showLogin(username string) tea.Cmd {
	a.form = authform.NewLogin(username)
	a.form.SetWidth(a.formWidth())
	a.screen = ScreenLogin
	return a.form.Init()
}

func (a *App) showRegister() tea.Cmd {
	a.form = authform.NewRegister()
	a.form.SetWidth(a.formWidth())
	a.screen = ScreenRegister
	return a.form.Init()
}

// enterDashboard shows the game page and starts loading resources
func (a *App) enterDashboard() tea.Cmd {
	a.stopPolling()
	a.form = nil
	a.screen = ScreenDashboard
	a.player = a.playerName()
	a.lastUpdate = time.Time{}
	a.dashboard = dashboard.New(a.player, a.dashboardWidth(), a.contentHeight())

	if a.deps.PollInterval <= 0 {
		return a.run("load", a.resources.Load)
	}

	ctx, cancel := context.WithCancel(a.ctx)
	a.stopPoll = cancel
	interval := a.deps.PollInterval
	return func() tea.Msg {
		return pollStoppedMsg{err: a.resources.Poll(ctx, interval)}
	}
}

func (a *App) logout() tea.Cmd {
	a.stopPolling()
	a.dashboard = nil
	a.player = ""
	a.lastUpdate = time.Time{}
	cmd := a.showMenu()
	if err := a.deps.Session.Clear(a.ctx); err != nil {
		slog.Error("Failed to clear session", "error", err)
		a.setStatus(controller.MsgServerError, widgets.StatusCritical)
		return cmd
	}
	a.setStatus("Logged out", widgets.StatusInfo)
	return cmd
}

func (a *App) quit() tea.Cmd {
	a.stopPolling()
	return tea.Quit
}

func (a *App) stopPolling() {
	if a.stopPoll != nil {
		a.stopPoll()
		a.stopPoll = nil
	}
}

// showError puts msg under the form being shown, or in the status line
func (a *App) showError(msg string) tea.Cmd {
	if a.form != nil && (a.screen == ScreenLogin || a.screen == ScreenRegister) {
		a.form.SetError(msg)
		return a.form.Init()
	}
	a.setStatus(msg, widgets.StatusCritical)
	return nil
}

func (a *App) setStatus(msg string, level widgets.StatusLevel) {
	a.status = msg
	a.level = level
}

func (a *App) clearStatus() {
	a.status = ""
}

// Status returns the status line text
func (a *App) Status() string {
	return a.status
}

func (a *App) hasSession() bool {
	return a.deps.Session.Token(a.ctx) != ""
}

// playerName is the username in the token, or the last one typed
func (a *App) playerName() string {
	if claims, err := a.deps.Session.Claims(a.ctx); err == nil && claims.Username != "" {
		return claims.Username
	}
	return a.deps.Session.LastUsername(a.ctx)
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin, ScreenRegister:
		content = a.viewForm()
	case ScreenDashboard:
		content = a.viewDashboard()
	default:
		content = a.viewMenu()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewMenu() string {
	var sb strings.Builder
	if a.menu != nil {
		sb.WriteString(a.menu.View())
	}
	if line := a.statusLine(); line != "" {
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return sb.String()
}

func (a *App) viewForm() string {
	var sb strings.Builder
	if a.form != nil {
		sb.WriteString(a.form.View())
	}
	if line := a.statusLine(); line != "" {
		sb.WriteString("\n")
		sb.WriteString(line)
	}
	return styles.Panel.Width(a.formWidth()).Render(sb.String())
}

// viewDashboard renders the dashboard with actions pane
func (a *App) viewDashboard() string {
	leftPane := ""
	if a.dashboard != nil {
		leftPane = styles.ActivePanel.Width(a.dashboardWidth()).Render(a.dashboard.View())
	} else {
		leftPane = styles.Panel.Width(a.dashboardWidth()).Render("Loading...")
	}

	title := styles.Title.Render(icons.Upgrade.String() + " Actions")
	if a.stopPoll != nil {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, " ", widgets.Badge("LIVE", widgets.StatusOK))
	}
	rightContent := title + "\n\n"
	rightContent += icons.Collect.String() + " Collect resources\n"
	rightContent += icons.Refresh.String() + " Refresh\n"
	rightContent += icons.Upgrade.String() + " Upgrade a building\n"
	rightContent += icons.Logout.String() + " Log out\n"
	rightContent += icons.Quit.String() + " Quit application\n"
	if line := a.statusLine(); line != "" {
		rightContent += "\n" + line
	}
	rightPane := styles.Panel.Width(a.actionsWidth()).Render(rightContent)

	if a.width < minTerminalWidth {
		return lipgloss.JoinVertical(lipgloss.Left, leftPane, rightPane)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// statusLine shows the spinner while a request is pending, else the last status
func (a *App) statusLine() string {
	if a.pending() {
		return a.spinner.View() + " Working..."
	}
	return widgets.StatusText(a.status, a.level)
}

// pending reports whether a submission or action is waiting for a response
func (a *App) pending() bool {
	return a.busy > 0 || a.login.Pending() || a.register.Pending() || a.resources.Pending()
}

// dashboardWidth calculates the width for the dashboard pane
func (a *App) dashboardWidth() int {
	if a.width < minTerminalWidth {
		return max(a.width-panelPadding, 0)
	}
	return (a.width - panelPadding) / 2
}

// actionsWidth calculates the width for the actions pane
func (a *App) actionsWidth() int {
	if a.width < minTerminalWidth {
		return a.dashboardWidth()
	}
	return a.width - a.dashboardWidth() - 4
}

func (a *App) formWidth() int {
	return min(maxFormWidth, max(a.width-panelPadding, 0))
}

// contentHeight calculates the height available for dashboard content
func (a *App) contentHeight() int {
	// header, blank, panel border and padding (4), blank, footer
	return a.height - 8
}

// frameWidth is the header and footer width
func (a *App) frameWidth() int {
	// width-1 keeps some terminals from wrapping the last column
	return max(minTerminalWidth, a.width-1)
}

// renderHeader creates the header bar with app branding and the player
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + icons.App.String() + " " + titleStyle.Render("Realm") + " "

	rightText := ""
	if a.player != "" && a.screen == ScreenDashboard {
		rightText = " " + contextStyle.Render(icons.Player.String()+" "+a.player) + " "
	}

	fillWidth := max(width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText), 0) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	rightText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenDashboard {
		rightText = " " + statusStyle.Render("Updated "+humanize.Time(a.lastUpdate)) + " "
	}
	rightWidth := lipgloss.Width(rightText)

	var bindings []key.Binding
	if a.screen == ScreenDashboard {
		bindings = a.keys.ShortHelp()
	} else {
		bindings = a.formKeys.ShortHelp()
	}
	a.help.Width = max(width-6-rightWidth, 0)
	leftText := " " + a.help.ShortHelpView(bindings) + " "

	fillWidth := max(width-4-lipgloss.Width(leftText)-rightWidth, 0) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and blocks until the player quits or ctx is done.
// slog output goes to a rotating file in logDir while the TUI owns the screen.
func Run(ctx context.Context, deps Deps, logDir, level, format string) error {
	if err := debuglog.Init(logDir, level, format); err != nil {
		return err
	}
	defer debuglog.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		New(ctx, deps),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
