// ABOUTME: Entry point for the realm CLI
// ABOUTME: Terminal client for logging in, registering and managing game resources

package main

import (
	"fmt"
	"os"

	"github.com/markalston/realm-client/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
