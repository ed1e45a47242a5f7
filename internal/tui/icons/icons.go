// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("REALM_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Resources
	Wood  = Icon{"󰐅", "♣"} // nf-md-pine_tree
	Stone = Icon{"󰟾", "◆"} // nf-md-cube
	Gold  = Icon{"󰆼", "●"} // nf-md-gold

	// Buildings
	Sawmill = Icon{"󰇥", "⚒"} // nf-md-axe
	Quarry  = Icon{"󰢷", "⛏"} // nf-md-pickaxe
	Mine    = Icon{"󰖟", "▼"} // nf-md-tunnel

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Collect = Icon{"󰁆", "↓"} // nf-md-arrow_collapse_down
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Upgrade = Icon{"󰁝", "↑"} // nf-md-arrow_up
	Logout  = Icon{"󰍃", "←"} // nf-md-logout
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App    = Icon{"󰆥", "♜"} // nf-md-castle
	Player = Icon{"", "☺"}  // nf-oct-person
)

// ForBuilding returns the icon of a building name
func ForBuilding(name string) Icon {
	switch name {
	case "sawmill":
		return Sawmill
	case "quarry":
		return Quarry
	case "mine":
		return Mine
	default:
		return Info
	}
}
