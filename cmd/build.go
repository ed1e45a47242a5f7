// ABOUTME: Build command for the realm CLI
// ABOUTME: Upgrades a production building by one level

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/realm-client/internal/client"
	"github.com/markalston/realm-client/internal/controller"
)

var buildCmd = &cobra.Command{
	Use:       "build BUILDING",
	Short:     "Upgrade a building",
	Long:      fmt.Sprintf("Upgrade a production building by one level. BUILDING is one of: %s.", strings.Join(client.Buildings, ", ")),
	Args:      cobra.ExactArgs(1),
	ValidArgs: client.Buildings,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBuild(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

// runBuild executes the upgrade and returns exit code
func runBuild(ctx context.Context, w io.Writer, building string) int {
	a, code := openOrFail(ctx, w)
	if a == nil {
		return code
	}
	defer a.Close()

	p := newPrinter(w)
	err := controller.NewResourceController(a.client, a.session, p, p).Upgrade(ctx, strings.ToLower(building))
	p.finish(err)
	return exitCode(err)
}
