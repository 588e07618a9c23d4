// ABOUTME: Entry point for the zelqora CLI
// ABOUTME: Command-line client for the Zelqora healthcare appointment service

package main

import (
	"fmt"
	"os"

	"github.com/GramosTV/zelqora-client/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
