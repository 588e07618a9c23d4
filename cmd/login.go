// ABOUTME: Login command for zelqora CLI
// ABOUTME: Authenticates against the backend and stores the session locally

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Zelqora backend",
	Long: `Log in to the Zelqora backend with your email and password.

Credentials can be passed via flags, or entered interactively when omitted.
The resulting session is stored locally and refreshed automatically.`,
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
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}

	email, password := loginEmail, loginPassword
	if email == "" || password == "" {
		if err := promptCredentials(&email, &password); err != nil {
			return fail(w, err)
		}
	}

	user, err := app.session.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", user.FullName(), user.Role)
	}
	return 0
}

// promptCredentials fills in whichever of email/password was not given as a flag.
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(func(s string) error {
				if !strings.Contains(s, "@") {
					return fmt.Errorf("enter a valid email address")
				}
				return nil
			}))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("password is required")
				}
				return nil
			}))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
