// ABOUTME: Reminder endpoint calls plus reminder planning for upcoming appointments
// ABOUTME: Plans the day-before and hour-before windows, skipping windows already past

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/GramosTV/zelqora-client/internal/models"
)

// Reminders lists a user's reminders, oldest reminder window first.
func (c *Client) Reminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := c.do(ctx, http.MethodGet, "/reminders/user/"+userID, nil, nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// UnreadReminderCount returns how many reminders the user has not read.
func (c *Client) UnreadReminderCount(ctx context.Context, userID string) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/reminders/user/"+userID+"/unread-count", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// CreateReminder stores a reminder on the backend.
func (c *Client) CreateReminder(ctx context.Context, req models.CreateReminder) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := c.do(ctx, http.MethodPost, "/reminders", nil, req, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// MarkReminderRead flags a single reminder as read.
func (c *Client) MarkReminderRead(ctx context.Context, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := c.do(ctx, http.MethodPatch, "/reminders/"+id+"/read", nil, struct{}{}, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// MarkAllRemindersRead flags every reminder for a user as read.
func (c *Client) MarkAllRemindersRead(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPatch, "/reminders/user/"+userID+"/read-all", nil, struct{}{}, nil)
}

// DeleteReminder removes a reminder.
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+id, nil, nil, nil)
}

// PlanReminders computes the reminder windows for an appointment: one a
// day before and one an hour before the start time. Windows that have
// already passed relative to now are skipped, as is everything for an
// appointment that is not in the future.
func PlanReminders(appt models.Appointment, userID string, now time.Time) []models.CreateReminder {
	if !appt.StartTime.After(now) {
		return nil
	}

	var planned []models.CreateReminder

	dayBefore := appt.StartTime.Add(-24 * time.Hour)
	if dayBefore.After(now) {
		planned = append(planned, models.CreateReminder{
			UserID:        userID,
			AppointmentID: appt.ID,
			Title:         "Upcoming appointment",
			Message: fmt.Sprintf("Don't forget your appointment %q tomorrow at %s.",
				appt.Title, appt.StartTime.Format("3:04 PM")),
			ReminderDate: dayBefore,
		})
	}

	hourBefore := appt.StartTime.Add(-1 * time.Hour)
	if hourBefore.After(now) {
		planned = append(planned, models.CreateReminder{
			UserID:        userID,
			AppointmentID: appt.ID,
			Title:         "Appointment soon",
			Message:       fmt.Sprintf("Your appointment %q is in 1 hour.", appt.Title),
			ReminderDate:  hourBefore,
		})
	}

	return planned
}
