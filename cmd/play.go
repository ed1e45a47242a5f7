// ABOUTME: Play command for the realm CLI
// ABOUTME: Launches the interactive terminal UI

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/markalston/realm-client/internal/tui"
)

var playPoll time.Duration

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive game screen",
	Long: `Open a full-screen terminal UI with the login, register and resource pages.

Logs are written to debug.log in the state directory while the UI runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPlay(ctx, os.Stderr)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	playCmd.Flags().DurationVar(&playPoll, "poll", 0, "Refresh resources at this interval (overrides REALM_POLL_INTERVAL)")
	rootCmd.AddCommand(playCmd)
}

// runPlay runs the TUI until the player quits and returns exit code
func runPlay(ctx context.Context, w io.Writer) int {
	// slog must stay off the terminal while the UI draws
	a, err := openApp(ctx, io.Discard)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	defer a.Close()

	interval := a.cfg.PollInterval
	if playPoll > 0 {
		interval = playPoll
	}

	logDir := a.cfg.StateDir
	if ephemeral {
		logDir = ""
	}

	deps := tui.Deps{
		Auth:         a.client,
		Game:         a.client,
		Session:      a.session,
		PollInterval: interval,
	}
	if err := tui.Run(ctx, deps, logDir, a.cfg.LogLevel, a.cfg.LogFormat); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	return exitOK
}
