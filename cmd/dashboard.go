// ABOUTME: Dashboard command for zelqora CLI
// ABOUTME: Launches the interactive terminal dashboard

package cmd

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/GramosTV/zelqora-client/internal/api"
	"github.com/GramosTV/zelqora-client/internal/tui/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open an interactive terminal dashboard showing your upcoming
appointments, unread messages, and reminders. Press r to refresh and q to quit.`,
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runDashboard(ctx, w)
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard starts the TUI and returns exit code
func runDashboard(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	model := dashboard.New(func(ctx context.Context) (*dashboard.Data, error) {
		user := app.session.CurrentUser()
		appts, err := app.api.AppointmentsForUser(ctx, user, api.AppointmentFilter{Upcoming: true})
		if err != nil {
			return nil, err
		}
		unread, err := app.api.UnreadMessages(ctx)
		if err != nil {
			return nil, err
		}
		reminderCount, err := app.api.UnreadReminderCount(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		return &dashboard.Data{
			User:            user,
			Appointments:    appts,
			UnreadMessages:  unread,
			UnreadReminders: reminderCount,
		}, nil
	})

	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fail(w, err)
	}
	return 0
}
