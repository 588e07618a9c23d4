// ABOUTME: Reminder commands for zelqora CLI
// ABOUTME: List, plan, and manage appointment reminders

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/GramosTV/zelqora-client/internal/api"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Manage appointment reminders",
}

var remindersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your reminders",
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runRemindersList(ctx, w)
		})
	},
}

var remindersPlanCmd = &cobra.Command{
	Use:   "plan <appointment-id>",
	Short: "Create the standard reminders for an appointment",
	Long: `Create the standard reminders for an upcoming appointment:
one the day before and one an hour before it starts. Windows that have
already passed are skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runRemindersPlan(ctx, w, args[0])
		})
	},
}

var remindersReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a reminder as read",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runRemindersRead(ctx, w, args[0])
		})
	},
}

var remindersReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark all of your reminders as read",
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runRemindersReadAll(ctx, w)
		})
	},
}

var remindersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runRemindersDelete(ctx, w, args[0])
		})
	},
}

func init() {
	remindersCmd.AddCommand(
		remindersListCmd,
		remindersPlanCmd,
		remindersReadCmd,
		remindersReadAllCmd,
		remindersDeleteCmd,
	)
	rootCmd.AddCommand(remindersCmd)
}

func runRemindersList(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	user, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	reminders, err := app.api.Reminders(ctx, user.ID)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(reminders, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(reminders) == 0 {
		fmt.Fprintln(w, "No reminders.")
		return 0
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tREAD\tTITLE")
	for _, r := range reminders {
		read := " "
		if r.IsRead {
			read = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.ReminderDate.Local().Format("2006-01-02 15:04"), read, r.Title)
	}
	tw.Flush()
	return 0
}

func runRemindersPlan(ctx context.Context, w io.Writer, appointmentID string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	user, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	appt, err := app.api.Appointment(ctx, appointmentID)
	if err != nil {
		return fail(w, err)
	}

	planned := api.PlanReminders(*appt, user.ID, time.Now())
	if len(planned) == 0 {
		fmt.Fprintln(w, "Appointment is too soon or already past; no reminders planned.")
		return 0
	}

	for _, req := range planned {
		reminder, err := app.api.CreateReminder(ctx, req)
		if err != nil {
			return fail(w, err)
		}
		fmt.Fprintf(w, "Reminder %s scheduled for %s.\n", reminder.ID, reminder.ReminderDate.Local().Format(time.RFC1123))
	}
	return 0
}

func runRemindersRead(ctx context.Context, w io.Writer, id string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	reminder, err := app.api.MarkReminderRead(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Reminder %s marked as read.\n", reminder.ID)
	return 0
}

func runRemindersReadAll(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	user, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	if err := app.api.MarkAllRemindersRead(ctx, user.ID); err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "All reminders marked as read.")
	return 0
}

func runRemindersDelete(ctx context.Context, w io.Writer, id string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	if err := app.api.DeleteReminder(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Reminder %s deleted.\n", id)
	return 0
}
