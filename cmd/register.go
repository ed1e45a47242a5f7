// ABOUTME: Register command for the realm CLI
// ABOUTME: Creates an account after checking the password confirmation

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
)

var (
	registerUsername string
	registerPassword string
	registerConfirm  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create an account on the auth service. The password and its confirmation
must match; a mismatch is reported without contacting the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm", "", "Password confirmation (prompted when omitted)")
}

// runRegister executes the registration and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	a, code := openOrFail(ctx, w)
	if a == nil {
		return code
	}
	defer a.Close()

	username, password, confirm := registerUsername, registerPassword, registerConfirm
	if username == "" || password == "" || confirm == "" {
		if err := promptRegister(&username, &password, &confirm); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitAppError
		}
	}

	p := newPrinter(w)
	err := controller.NewRegisterController(a.client, p, p).Submit(ctx, username, password, confirm)
	p.finish(err)
	return exitCode(err)
}
