// ABOUTME: Whoami command for the realm CLI
// ABOUTME: Shows the player named by the stored token and when it expires

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/markalston/realm-client/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in player",
	Long:  `Decode the stored access token and show the player and token expiry. The token is not verified.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(context.Background(), os.Stdout, time.Now())
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the token claims and returns exit code
func runWhoami(ctx context.Context, w io.Writer, now time.Time) int {
	a, code := openOrFail(ctx, w)
	if a == nil {
		return code
	}
	defer a.Close()

	claims, err := a.session.Claims(ctx)
	if errors.Is(err, session.ErrNoToken) {
		fmt.Fprintln(w, "Not logged in")
		return exitAppError
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitAppError
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(claims, now))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(claims, now))
	}
	return exitOK
}

// formatWhoamiHuman formats claims for human readability
func formatWhoamiHuman(c *session.Claims, now time.Time) string {
	expiry := "never"
	if !c.ExpiresAt.IsZero() {
		expiry = humanize.RelTime(c.ExpiresAt, now, "ago", "from now")
		if c.Expired(now) {
			expiry += " (expired)"
		}
	}
	return fmt.Sprintf(`Player:  %s
ID:      %s
Expires: %s`, c.Username, c.Subject, expiry)
}

// formatWhoamiJSON formats claims as JSON
func formatWhoamiJSON(c *session.Claims, now time.Time) string {
	output := map[string]interface{}{
		"username": c.Username,
		"subject":  c.Subject,
		"expired":  c.Expired(now),
	}
	if !c.ExpiresAt.IsZero() {
		output["expires_at"] = c.ExpiresAt.UTC().Format(time.RFC3339)
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
