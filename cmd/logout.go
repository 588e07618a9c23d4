// ABOUTME: Logout command for zelqora CLI
// ABOUTME: Clears the stored session and notifies the backend

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
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
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}

	app.session.Logout(ctx)
	fmt.Fprintln(w, "Logged out.")
	return 0
}
