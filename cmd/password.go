// ABOUTME: Password reset commands for zelqora CLI
// ABOUTME: Requests a reset email and applies a reset token

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Manage your password",
}

var passwordForgotCmd = &cobra.Command{
	Use:   "forgot <email>",
	Short: "Request a password reset email",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runPasswordForgot(ctx, w, args[0])
		})
	},
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset <token>",
	Short: "Set a new password using a reset token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runPasswordReset(ctx, w, args[0])
		})
	},
}

func init() {
	passwordCmd.AddCommand(passwordForgotCmd, passwordResetCmd)
	rootCmd.AddCommand(passwordCmd)
}

func runPasswordForgot(ctx context.Context, w io.Writer, email string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}

	if err := app.api.RequestPasswordReset(ctx, email); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "If an account exists for %s, a reset email is on its way.\n", email)
	return 0
}

func runPasswordReset(ctx context.Context, w io.Writer, token string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}

	var newPassword string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Value(&newPassword).
			Validate(func(s string) error {
				if len(s) < 8 {
					return fmt.Errorf("password must be at least 8 characters")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return fail(w, err)
	}

	if err := app.api.ResetPassword(ctx, token, newPassword); err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "Password updated. You can log in with it now.")
	return 0
}
