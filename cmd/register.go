// ABOUTME: Register command for zelqora CLI
// ABOUTME: Creates a new account and logs the user in

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

	"github.com/GramosTV/zelqora-client/internal/models"
)

var (
	registerEmail     string
	registerPassword  string
	registerFirstName string
	registerLastName  string
	registerRole      string
	registerSpecialty string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new Zelqora account",
	Long: `Create a new Zelqora account and log in with it.

Details can be passed via flags, or entered interactively when omitted.
Doctors may set a specialization; patients leave it empty.`,
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
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerRole, "role", "", "Account role: patient or doctor")
	registerCmd.Flags().StringVar(&registerSpecialty, "specialization", "", "Medical specialization (doctors only)")
	rootCmd.AddCommand(registerCmd)
}

// runRegister executes the registration flow and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}

	req := models.RegisterRequest{
		Email:          strings.TrimSpace(registerEmail),
		Password:       registerPassword,
		FirstName:      strings.TrimSpace(registerFirstName),
		LastName:       strings.TrimSpace(registerLastName),
		Role:           models.Role(registerRole),
		Specialization: strings.TrimSpace(registerSpecialty),
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" || req.Role == "" {
		if err := promptRegistration(&req); err != nil {
			return fail(w, err)
		}
	}
	role, ok := models.ParseRole(string(req.Role))
	if !ok {
		return fail(w, fmt.Errorf("invalid role %q: must be patient or doctor", req.Role))
	}
	req.Role = role

	user, err := app.session.Register(ctx, req)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Account created. Logged in as %s (%s)\n", user.FullName(), user.Role)
	}
	return 0
}

// promptRegistration fills in the missing registration fields interactively.
func promptRegistration(req *models.RegisterRequest) error {
	role := string(req.Role)
	var fields []huh.Field

	if req.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&req.Email).
			Validate(func(s string) error {
				if !strings.Contains(s, "@") {
					return fmt.Errorf("enter a valid email address")
				}
				return nil
			}))
	}
	if req.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&req.Password).
			Validate(func(s string) error {
				if len(s) < 8 {
					return fmt.Errorf("password must be at least 8 characters")
				}
				return nil
			}))
	}
	if req.FirstName == "" {
		fields = append(fields, huh.NewInput().Title("First name").Value(&req.FirstName))
	}
	if req.LastName == "" {
		fields = append(fields, huh.NewInput().Title("Last name").Value(&req.LastName))
	}
	if role == "" {
		fields = append(fields, huh.NewSelect[string]().
			Title("Role").
			Options(
				huh.NewOption("Patient", string(models.RolePatient)),
				huh.NewOption("Doctor", string(models.RoleDoctor)),
			).
			Value(&role))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}
	req.Role = models.Role(role)

	if req.Role == models.RoleDoctor && req.Specialization == "" {
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Specialization").Value(&req.Specialization),
		)).Run()
	}
	return nil
}
