// ABOUTME: Collect command for the realm CLI
// ABOUTME: Gathers accrued resources and prints the new counters

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/realm-client/internal/controller"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect accrued resources",
	Long: `Collect the resources your buildings have produced.

Exit codes:
  0 - Resources collected
  1 - The game refused (for example, collected too recently)
  2 - Error (connectivity, timeout, configuration)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCollect(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

// runCollect executes the collection and returns exit code
func runCollect(ctx context.Context, w io.Writer) int {
	a, code := openOrFail(ctx, w)
	if a == nil {
		return code
	}
	defer a.Close()

	p := newPrinter(w)
	err := controller.NewResourceController(a.client, a.session, p, p).Collect(ctx)
	p.finish(err)
	return exitCode(err)
}
