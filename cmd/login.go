// ABOUTME: Login command for the realm CLI
// ABOUTME: Signs in with credentials or imports a token from a cookie string

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/realm-client/internal/controller"
	"github.com/markalston/realm-client/internal/session"
)

var (
	loginUsername string
	loginPassword string
	loginCookie   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Long: `Sign in to the auth service. The issued token is stored in the session
directory and sent to the game service by every later command.

Missing fields are prompted for. The last username used is offered as the default.
With --cookie, a token is imported from a raw cookie string such as
"access_token=abc123; theme=dark" and no request is made.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginCookie, "cookie", "", "Import the access_token from a cookie string")
}

// runLogin executes the login and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	a, code := openOrFail(ctx, w)
	if a == nil {
		return code
	}
	defer a.Close()

	if loginCookie != "" {
		return importCookie(ctx, w, a)
	}

	username, password := loginUsername, loginPassword
	if username == "" {
		username = a.session.LastUsername(ctx)
	}
	if username == "" || password == "" {
		if err := promptLogin(&username, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitAppError
		}
	}

	p := newPrinter(w)
	err := controller.NewLoginController(a.client, a.session, p, p).Submit(ctx, username, password)
	p.finish(err)
	return exitCode(err)
}

func importCookie(ctx context.Context, w io.Writer, a *app) int {
	token := session.ParseCookieHeader(loginCookie, session.TokenCookieName)
	if token == "" {
		fmt.Fprintf(w, "Error: no %s in cookie string\n", session.TokenCookieName)
		return exitAppError
	}
	if err := a.session.SetToken(ctx, token); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}

	if IsJSONOutput() {
		printJSON(w, outcome{OK: true, Message: "token imported"})
	} else {
		fmt.Fprintln(w, "Token imported")
	}
	return exitOK
}
