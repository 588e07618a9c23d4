// ABOUTME: Users commands for zelqora CLI
// ABOUTME: Admin directory listing and account removal

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GramosTV/zelqora-client/internal/models"
)

var usersRole string

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Administer user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts, optionally by role",
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runUsersList(ctx, w)
		})
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runUsersDelete(ctx, w, args[0])
		})
	},
}

func init() {
	usersListCmd.Flags().StringVar(&usersRole, "role", "", "Filter by role (patient, doctor)")

	usersCmd.AddCommand(usersListCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	var users []models.User
	switch usersRole {
	case "":
		users, err = app.api.Users(ctx)
	case string(models.RolePatient):
		users, err = app.api.Patients(ctx)
	case string(models.RoleDoctor):
		users, err = app.api.Doctors(ctx)
	default:
		return fail(w, fmt.Errorf("unknown role %q; use patient or doctor", usersRole))
	}
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return 0
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tROLE\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.FullName(), u.Role, u.Email)
	}
	tw.Flush()
	return 0
}

func runUsersDelete(ctx context.Context, w io.Writer, id string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	if err := app.api.DeleteUser(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "User %s deleted.\n", id)
	return 0
}
