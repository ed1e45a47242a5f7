// ABOUTME: Adapts controller view calls into bubbletea messages
// ABOUTME: Controllers run in commands; their output reaches Update through a channel

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/realm-client/internal/client"
)

// eventBuffer bounds how many view events may wait for Update
const eventBuffer = 64

type errorMsg struct{ text string }

type statusMsg struct{ text string }

type alertMsg struct{ text string }

type failureMsg struct {
	action string
	err    error
}

type navigateMsg struct{ url string }

type resourcesMsg struct{ state client.ResourceState }

// bridge implements controller.Reporter, Navigator and ResourceView
type bridge struct {
	events chan tea.Msg
}

func newBridge() *bridge {
	return &bridge{events: make(chan tea.Msg, eventBuffer)}
}

func (b *bridge) ShowError(msg string)  { b.events <- errorMsg{text: msg} }
func (b *bridge) ShowStatus(msg string) { b.events <- statusMsg{text: msg} }
func (b *bridge) Alert(msg string)      { b.events <- alertMsg{text: msg} }
func (b *bridge) Navigate(url string)   { b.events <- navigateMsg{url: url} }

func (b *bridge) ReportFailure(action string, err error) {
	b.events <- failureMsg{action: action, err: err}
}

func (b *bridge) ShowResources(state client.ResourceState) {
	b.events <- resourcesMsg{state: state}
}
