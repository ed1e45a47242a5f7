// ABOUTME: Key bindings for the TUI screens
// ABOUTME: Feeds the bubbles help footer

package tui

import "github.com/charmbracelet/bubbles/key"

// dashboardKeys are the game page actions
type dashboardKeys struct {
	Collect key.Binding
	Refresh key.Binding
	Sawmill key.Binding
	Quarry  key.Binding
	Mine    key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Collect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collect")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Sawmill: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sawmill")),
		Quarry:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "quarry")),
		Mine:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "mine")),
		Logout:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logout")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Collect, k.Refresh, k.Sawmill, k.Quarry, k.Mine, k.Logout, k.Quit}
}

// FullHelp implements help.KeyMap
func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Collect, k.Refresh},
		{k.Sawmill, k.Quarry, k.Mine},
		{k.Logout, k.Quit},
	}
}

// upgrades maps the building keys to building names
func (k dashboardKeys) upgrades() map[string]key.Binding {
	return map[string]key.Binding{
		"sawmill": k.Sawmill,
		"quarry":  k.Quarry,
		"mine":    k.Mine,
	}
}

// formKeys are shown on the menu and the credential forms
type formKeys struct {
	Navigate key.Binding
	Submit   key.Binding
	Back     key.Binding
}

func newFormKeys() formKeys {
	return formKeys{
		Navigate: key.NewBinding(key.WithKeys("up", "down", "tab"), key.WithHelp("↑↓", "navigate")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp implements help.KeyMap
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Submit, k.Back}
}

// FullHelp implements help.KeyMap
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
