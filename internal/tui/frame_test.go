// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width

package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/realm-client/internal/client"
	"github.com/markalston/realm-client/internal/testutil"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{60, 80, 100, 120}

	for _, targetWidth := range widths {
		t.Run(fmt.Sprintf("width_%d", targetWidth), func(t *testing.T) {
			f := testutil.NewFakeAPI(t)
			app, _ := newTestApp(t, f)

			model, _ := app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
			app = model.(*App)

			lines := strings.Split(app.View(), "\n")
			header := lines[0]
			footer := lines[len(lines)-1]

			// Frame uses width-1 to prevent wrapping on some terminals,
			// but clamps to minimum of 80 for usability
			expectedWidth := max(targetWidth-1, 80)

			if !strings.HasPrefix(header, "╭") && !strings.Contains(header, "╭") {
				t.Fatalf("header not found in first line %q", header)
			}
			if w := lipgloss.Width(header); w != expectedWidth {
				t.Errorf("header width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
			}
			if !strings.Contains(footer, "╰") {
				t.Fatalf("footer not found in last line %q", footer)
			}
			if w := lipgloss.Width(footer); w != expectedWidth {
				t.Errorf("footer width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
			}
		})
	}
}

func TestFrame_DashboardShowsPlayerAndUpdateTime(t *testing.T) {
	f := testutil.NewFakeAPI(t)
	id := f.AddPlayer("alice", "secret", client.ResourceState{Wood: 1200})
	app, sess := newTestApp(t, f)
	sess.SetToken(context.Background(), f.IssueToken(id, "alice"))

	perform(t, app, app.enterDashboard())

	view := app.View()
	lines := strings.Split(view, "\n")
	if !strings.Contains(lines[0], "alice") {
		t.Errorf("expected player in header, got %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "Updated") {
		t.Errorf("expected update time in footer, got %q", lines[len(lines)-1])
	}
	if !strings.Contains(view, "1,200") {
		t.Error("expected formatted wood count in view")
	}
	if w := lipgloss.Width(lines[len(lines)-1]); w != 99 {
		t.Errorf("expected footer width 99, got %d", w)
	}
}
