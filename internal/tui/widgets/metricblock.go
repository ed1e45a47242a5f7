// ABOUTME: Compact metric block widget for dashboard displays
// ABOUTME: Shows one resource counter with icon and title in a bordered panel

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/markalston/realm-client/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"), // Muted gray
		TitleColor:  lipgloss.Color("#7C3AED"), // Purple
		ValueColor:  lipgloss.Color("#F9FAFB"), // Light
	}
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title string, value string, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}

	// border and padding take 4 columns
	innerWidth := config.Width - 4

	titleStr := fmt.Sprintf("%s %s", icon.String(), title)
	titleWidth := lipgloss.Width(titleStr)
	if titleWidth > innerWidth {
		titleStr = truncate(titleStr, innerWidth)
		titleWidth = lipgloss.Width(titleStr)
	}

	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-titleWidth-1)))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	valueLine := "│  " + pad(valueStyle.Render(value), innerWidth) + "│"

	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	subtitleLine := "│  " + pad(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth) + "│"

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))

	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(valueLine),
		borderStyle.Render(subtitleLine),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// CountBlock renders a resource counter with thousands separators
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, humanize.Comma(int64(count)), label, config)
}

// pad right-fills s with spaces to width display columns
func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

// truncate shortens a string to maxLen with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
