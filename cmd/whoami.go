// ABOUTME: Whoami command for zelqora CLI
// ABOUTME: Shows the currently signed-in user

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently signed-in user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the current user and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}

	user, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Email: %s\n", user.Email)
	fmt.Fprintf(w, "Name:  %s\n", user.FullName())
	fmt.Fprintf(w, "Role:  %s\n", user.Role)
	if user.Specialization != "" {
		fmt.Fprintf(w, "Specialization: %s\n", user.Specialization)
	}
	return 0
}
