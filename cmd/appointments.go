// ABOUTME: Appointment commands for zelqora CLI
// ABOUTME: List, inspect, create, and change the status of appointments

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/GramosTV/zelqora-client/internal/api"
	"github.com/GramosTV/zelqora-client/internal/models"
)

var (
	apptUpcoming bool
	apptToday    bool
	apptTitle    string
	apptDoctor   string
	apptPatient  string
	apptStart    string
	apptEnd      string
	apptNotes    string
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appt"},
	Short:   "Manage appointments",
}

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your appointments",
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runAppointmentsList(ctx, w)
		})
	},
}

var appointmentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single appointment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runAppointmentsShow(ctx, w, args[0])
		})
	},
}

var appointmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Book a new appointment",
	Long: `Book a new appointment with a doctor.

Times are given as RFC 3339 timestamps, e.g. 2026-09-01T14:00:00Z.
When run as a patient, --patient defaults to your own account.`,
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runAppointmentsCreate(ctx, w)
		})
	},
}

var appointmentsConfirmCmd = &cobra.Command{
	Use:   "confirm <id>",
	Short: "Confirm a pending appointment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runAppointmentsStatus(ctx, w, args[0], models.StatusConfirmed)
		})
	},
}

var appointmentsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runAppointmentsStatus(ctx, w, args[0], models.StatusCancelled)
		})
	},
}

var appointmentsCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark an appointment as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runAppointmentsStatus(ctx, w, args[0], models.StatusCompleted)
		})
	},
}

var appointmentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an appointment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runAppointmentsDelete(ctx, w, args[0])
		})
	},
}

func init() {
	appointmentsListCmd.Flags().BoolVar(&apptUpcoming, "upcoming", false, "Only future appointments")
	appointmentsListCmd.Flags().BoolVar(&apptToday, "today", false, "Only today's appointments")

	appointmentsCreateCmd.Flags().StringVar(&apptTitle, "title", "", "Appointment title")
	appointmentsCreateCmd.Flags().StringVar(&apptDoctor, "doctor", "", "Doctor user ID")
	appointmentsCreateCmd.Flags().StringVar(&apptPatient, "patient", "", "Patient user ID (defaults to you)")
	appointmentsCreateCmd.Flags().StringVar(&apptStart, "start", "", "Start time (RFC 3339)")
	appointmentsCreateCmd.Flags().StringVar(&apptEnd, "end", "", "End time (RFC 3339, defaults to start + 30m)")
	appointmentsCreateCmd.Flags().StringVar(&apptNotes, "notes", "", "Optional notes")
	appointmentsCreateCmd.MarkFlagRequired("title")
	appointmentsCreateCmd.MarkFlagRequired("doctor")
	appointmentsCreateCmd.MarkFlagRequired("start")

	appointmentsCmd.AddCommand(
		appointmentsListCmd,
		appointmentsShowCmd,
		appointmentsCreateCmd,
		appointmentsConfirmCmd,
		appointmentsCancelCmd,
		appointmentsCompleteCmd,
		appointmentsDeleteCmd,
	)
	rootCmd.AddCommand(appointmentsCmd)
}

// runStandalone runs a command body with signal handling and exit-code plumbing.
func runStandalone(run func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if exitCode := run(ctx, os.Stdout); exitCode != 0 {
		os.Exit(exitCode)
	}
}

func runAppointmentsList(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	user, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	appts, err := app.api.AppointmentsForUser(ctx, user, api.AppointmentFilter{
		Upcoming: apptUpcoming,
		Today:    apptToday,
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(appts, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(appts) == 0 {
		fmt.Fprintln(w, "No appointments found.")
		return 0
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTART\tSTATUS")
	for _, a := range appts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Title, a.StartTime.Local().Format("2006-01-02 15:04"), a.Status)
	}
	tw.Flush()
	return 0
}

func runAppointmentsShow(ctx context.Context, w io.Writer, id string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	appt, err := app.api.Appointment(ctx, id)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(appt, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Title:  %s\n", appt.Title)
	fmt.Fprintf(w, "Status: %s\n", appt.Status)
	fmt.Fprintf(w, "Start:  %s\n", appt.StartTime.Local().Format(time.RFC1123))
	fmt.Fprintf(w, "End:    %s\n", appt.EndTime.Local().Format(time.RFC1123))
	if appt.Doctor != nil {
		fmt.Fprintf(w, "Doctor: %s\n", appt.Doctor.FullName())
	}
	if appt.Patient != nil {
		fmt.Fprintf(w, "Patient: %s\n", appt.Patient.FullName())
	}
	if appt.Notes != "" {
		fmt.Fprintf(w, "Notes:  %s\n", appt.Notes)
	}
	return 0
}

func runAppointmentsCreate(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	user, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	start, err := time.Parse(time.RFC3339, apptStart)
	if err != nil {
		return fail(w, fmt.Errorf("invalid --start: %w", err))
	}
	end := start.Add(30 * time.Minute)
	if apptEnd != "" {
		end, err = time.Parse(time.RFC3339, apptEnd)
		if err != nil {
			return fail(w, fmt.Errorf("invalid --end: %w", err))
		}
	}
	if !end.After(start) {
		return fail(w, fmt.Errorf("--end must be after --start"))
	}

	patientID := apptPatient
	if patientID == "" {
		patientID = user.ID
	}

	appt, err := app.api.CreateAppointment(ctx, models.CreateAppointment{
		Title:     apptTitle,
		PatientID: patientID,
		DoctorID:  apptDoctor,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Notes:     apptNotes,
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(appt, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Appointment %s booked for %s.\n", appt.ID, appt.StartTime.Local().Format(time.RFC1123))
	return 0
}

func runAppointmentsStatus(ctx context.Context, w io.Writer, id string, status models.AppointmentStatus) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	appt, err := app.api.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(appt, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Appointment %s is now %s.\n", appt.ID, appt.Status)
	return 0
}

func runAppointmentsDelete(ctx context.Context, w io.Writer, id string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	if err := app.api.DeleteAppointment(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Appointment %s deleted.\n", id)
	return 0
}
