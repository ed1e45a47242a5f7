// ABOUTME: Logout command for the realm CLI
// ABOUTME: Removes the stored token and cookie

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the session token",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(context.Background(), os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	a, code := openOrFail(ctx, w)
	if a == nil {
		return code
	}
	defer a.Close()

	if err := a.session.Clear(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	if IsJSONOutput() {
		printJSON(w, outcome{OK: true, Message: "logged out"})
	} else {
		fmt.Fprintln(w, "Logged out")
	}
	return exitOK
}
