// ABOUTME: Doctors command for zelqora CLI
// ABOUTME: Lists and searches the doctor directory

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

var doctorSearch string

var doctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "List available doctors",
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runDoctors(ctx, w)
		})
	},
}

func init() {
	doctorsCmd.Flags().StringVar(&doctorSearch, "search", "", "Filter doctors by name or email")
	rootCmd.AddCommand(doctorsCmd)
}

// runDoctors lists the doctor directory and returns exit code
func runDoctors(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	var doctors []models.User
	if doctorSearch != "" {
		users, err := app.api.SearchUsers(ctx, doctorSearch)
		if err != nil {
			return fail(w, err)
		}
		for _, u := range users {
			if u.Role == models.RoleDoctor {
				doctors = append(doctors, u)
			}
		}
	} else {
		doctors, err = app.api.Doctors(ctx)
		if err != nil {
			return fail(w, err)
		}
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(doctors, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(doctors) == 0 {
		fmt.Fprintln(w, "No doctors found.")
		return 0
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALIZATION\tEMAIL")
	for _, d := range doctors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.FullName(), d.Specialization, d.Email)
	}
	tw.Flush()
	return 0
}
