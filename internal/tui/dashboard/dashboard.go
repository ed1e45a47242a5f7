// ABOUTME: Dashboard component displaying the player's resources
// ABOUTME: Shows wood, stone and gold blocks plus the upgradable buildings

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/realm-client/internal/client"
	"github.com/markalston/realm-client/internal/tui/icons"
	"github.com/markalston/realm-client/internal/tui/styles"
	"github.com/markalston/realm-client/internal/tui/widgets"
)

// blockWidth is the width of one resource block
const blockWidth = 20

// Dashboard displays resource counters
type Dashboard struct {
	state  client.ResourceState
	loaded bool
	player string
	width  int
	height int
}

// New creates an empty dashboard
func New(player string, width, height int) *Dashboard {
	return &Dashboard{
		player: player,
		width:  width,
		height: height,
	}
}

// SetResources replaces the counters shown
func (d *Dashboard) SetResources(state client.ResourceState) {
	d.state = state
	d.loaded = true
}

// Resources returns the counters shown and whether any have arrived
func (d *Dashboard) Resources() (client.ResourceState, bool) {
	return d.state, d.loaded
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	title := "Resources"
	if d.player != "" {
		title = fmt.Sprintf("%s's resources", d.player)
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	if !d.loaded {
		sb.WriteString("Loading resources...")
		return d.frame(sb.String())
	}

	sb.WriteString(d.renderBlocks())
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Buildings"))
	sb.WriteString("\n")
	for i, b := range client.Buildings {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			styles.KeyStyle.Render(fmt.Sprintf("%d", i+1)),
			icons.ForBuilding(b).String(),
			b))
	}

	return d.frame(sb.String())
}

func (d *Dashboard) renderBlocks() string {
	wood := widgets.DefaultMetricBlockConfig()
	wood.Width = blockWidth
	wood.TitleColor = styles.WoodColor

	stone := wood
	stone.TitleColor = styles.StoneColor

	gold := wood
	gold.TitleColor = styles.GoldColor

	blocks := []string{
		widgets.CountBlock(icons.Wood, "Wood", d.state.Wood, "sawmill", wood),
		widgets.CountBlock(icons.Stone, "Stone", d.state.Stone, "quarry", stone),
		widgets.CountBlock(icons.Gold, "Gold", d.state.Gold, "mine", gold),
	}

	// stack vertically when three blocks do not fit side by side
	if d.width > 0 && d.width < 3*blockWidth {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (d *Dashboard) frame(content string) string {
	style := lipgloss.NewStyle()
	if d.width > 0 {
		style = style.Width(d.width)
	}
	if d.height > 0 {
		style = style.Height(d.height)
	}
	return style.Render(content)
}
