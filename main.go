// ABOUTME: Entry point for authctl CLI
// ABOUTME: Command-line client for registering, logging in, and fetching the profile

package main

import (
	"fmt"
	"os"

	"github.com/markalston/authctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
