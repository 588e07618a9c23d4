// ABOUTME: Tests for appointment endpoint calls
// ABOUTME: Verifies role-variant paths, time filters, and status updates

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/GramosTV/zelqora-client/internal/models"
)

func TestAppointmentsForUser_RoleVariantPaths(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		wantPath string
	}{
		{"doctor", &models.User{ID: "d-1", Role: models.RoleDoctor}, "/appointments/doctor/d-1"},
		{"patient", &models.User{ID: "p-1", Role: models.RolePatient}, "/appointments/patient/p-1"},
		{"admin", &models.User{ID: "a-1", Role: models.RoleAdmin}, "/appointments"},
		{"nil user", nil, "/appointments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			if _, err := newTestClient(server).AppointmentsForUser(context.Background(), tt.user, AppointmentFilter{}); err != nil {
				t.Fatalf("AppointmentsForUser failed: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
		})
	}
}

func TestAppointmentFilter_Query(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 2, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter AppointmentFilter
		want   url.Values
	}{
		{"empty", AppointmentFilter{}, url.Values{}},
		{"upcoming", AppointmentFilter{Upcoming: true}, url.Values{"upcoming": {"true"}}},
		{"today", AppointmentFilter{Today: true}, url.Values{"today": {"true"}}},
		{
			"date range",
			AppointmentFilter{Start: start, End: end},
			url.Values{"startDate": {"2026-09-01T09:00:00Z"}, "endDate": {"2026-09-02T17:00:00Z"}},
		},
		{"start without end ignored", AppointmentFilter{Start: start}, url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.query()
			if got.Encode() != tt.want.Encode() {
				t.Errorf("query = %q, want %q", got.Encode(), tt.want.Encode())
			}
		})
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"a-1","status":"confirmed"}`))
	}))
	defer server.Close()

	appt, err := newTestClient(server).UpdateAppointmentStatus(context.Background(), "a-1", models.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateAppointmentStatus failed: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	if gotPath != "/appointments/a-1" {
		t.Errorf("path = %q, want /appointments/a-1", gotPath)
	}
	if gotBody["status"] != "confirmed" {
		t.Errorf("body = %v, want status confirmed", gotBody)
	}
	if len(gotBody) != 1 {
		t.Errorf("body carries %d fields, want status only", len(gotBody))
	}
	if appt.Status != models.StatusConfirmed {
		t.Errorf("Status = %q, want confirmed", appt.Status)
	}
}

func TestCreateAppointment(t *testing.T) {
	var gotBody models.CreateAppointment
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"a-9","title":"Checkup","status":"pending"}`))
	}))
	defer server.Close()

	req := models.CreateAppointment{
		Title:     "Checkup",
		PatientID: "p-1",
		DoctorID:  "d-1",
		StartTime: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
	}
	appt, err := newTestClient(server).CreateAppointment(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateAppointment failed: %v", err)
	}

	if gotBody.Title != "Checkup" || gotBody.DoctorID != "d-1" {
		t.Errorf("request body = %+v", gotBody)
	}
	if appt.ID != "a-9" {
		t.Errorf("ID = %q, want a-9", appt.ID)
	}
}
