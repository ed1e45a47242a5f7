// ABOUTME: Resources command for the realm CLI
// ABOUTME: Shows the resource counters once or on an interval

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/markalston/realm-client/internal/controller"
)

var watchInterval time.Duration

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Show your resources",
	Long: `Display your wood, stone and gold.

With --watch (or REALM_POLL_INTERVAL), the counters are refreshed on that
interval until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runResources(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
	resourcesCmd.Flags().DurationVar(&watchInterval, "watch", 0, "Refresh interval (e.g. 30s); 0 shows once")
}

// runResources loads the counters and returns exit code
func runResources(ctx context.Context, w io.Writer) int {
	a, code := openOrFail(ctx, w)
	if a == nil {
		return code
	}
	defer a.Close()

	interval := watchInterval
	if interval == 0 {
		interval = a.cfg.PollInterval
	}

	p := newPrinter(w)
	rc := controller.NewResourceController(a.client, a.session, p, p)

	if interval > 0 && !IsJSONOutput() {
		err := rc.Poll(ctx, interval)
		if errors.Is(err, context.Canceled) {
			return exitOK
		}
		return exitCode(err)
	}

	err := rc.Load(ctx)
	p.finish(err)
	return exitCode(err)
}
