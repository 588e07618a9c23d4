// ABOUTME: Appointment endpoint calls with role-variant listing and time filters
// ABOUTME: Doctors see their schedule, patients their visits, admins everything

package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/GramosTV/zelqora-client/internal/models"
)

// AppointmentFilter narrows appointment listings. Zero value means no filter.
type AppointmentFilter struct {
	Upcoming bool
	Today    bool
	Start    time.Time
	End      time.Time
}

func (f AppointmentFilter) query() url.Values {
	query := url.Values{}
	if f.Upcoming {
		query.Set("upcoming", "true")
	}
	if f.Today {
		query.Set("today", "true")
	}
	if !f.Start.IsZero() && !f.End.IsZero() {
		query.Set("startDate", f.Start.UTC().Format(time.RFC3339))
		query.Set("endDate", f.End.UTC().Format(time.RFC3339))
	}
	return query
}

// Appointments lists all appointments (admin view), optionally filtered.
func (c *Client) Appointments(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", filter.query(), nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// AppointmentsForUser picks the endpoint variant by role: doctors get the
// appointments where they are the doctor, patients where they are the
// patient, and admins get everything.
func (c *Client) AppointmentsForUser(ctx context.Context, user *models.User, filter AppointmentFilter) ([]models.Appointment, error) {
	var path string
	switch {
	case user == nil:
		path = "/appointments"
	case user.Role == models.RoleDoctor:
		path = "/appointments/doctor/" + user.ID
	case user.Role == models.RolePatient:
		path = "/appointments/patient/" + user.ID
	default:
		path = "/appointments"
	}

	var appts []models.Appointment
	if err := c.do(ctx, http.MethodGet, path, filter.query(), nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// Appointment fetches a single appointment by ID.
func (c *Client) Appointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/"+id, nil, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// CreateAppointment books a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, req models.CreateAppointment) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateAppointment patches appointment fields.
func (c *Client) UpdateAppointment(ctx context.Context, id string, req models.UpdateAppointment) (*models.Appointment, error) {
	var appt models.Appointment
	if err := c.do(ctx, http.MethodPatch, "/appointments/"+id, nil, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateAppointmentStatus is a status-only patch (confirm/cancel/complete).
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	return c.UpdateAppointment(ctx, id, models.UpdateAppointment{Status: &status})
}

// DeleteAppointment removes an appointment entirely.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/appointments/"+id, nil, nil, nil)
}
