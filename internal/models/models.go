// ABOUTME: Domain models for the Zelqora healthcare appointment client
// ABOUTME: Mirrors the backend JSON contracts for users, appointments, messages, and reminders

package models

import "time"

// Role identifies what kind of account a user has
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string. Empty defaults to patient.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return Role(s), true
	case "":
		return RolePatient, true
	default:
		return "", false
	}
}

// User is the backend's user record
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Role           Role      `json:"role"`
	Specialization string    `json:"specialization,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FullName returns "First Last" for display
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return u.FirstName + " " + u.LastName
}

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment is a scheduled visit between a patient and a doctor
type Appointment struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	PatientID string            `json:"patientId"`
	DoctorID  string            `json:"doctorId"`
	Patient   *User             `json:"patient,omitempty"`
	Doctor    *User             `json:"doctor,omitempty"`
	StartTime time.Time         `json:"startTime"`
	EndTime   time.Time         `json:"endTime"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CreateAppointment is the payload for POST /appointments
type CreateAppointment struct {
	Title     string    `json:"title"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Notes     string    `json:"notes,omitempty"`
}

// UpdateAppointment is the payload for PATCH /appointments/{id}.
// Nil fields are omitted so the backend leaves them unchanged.
type UpdateAppointment struct {
	Title     *string            `json:"title,omitempty"`
	StartTime *time.Time         `json:"startTime,omitempty"`
	EndTime   *time.Time         `json:"endTime,omitempty"`
	Status    *AppointmentStatus `json:"status,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
}

// Message is a direct message between two users. Content may be stored
// encrypted on the server; the client decrypts before display.
type Message struct {
	ID            string    `json:"id"`
	SenderID      string    `json:"senderId"`
	ReceiverID    string    `json:"receiverId"`
	Content       string    `json:"content"`
	Encrypted     bool      `json:"encrypted"`
	IntegrityHash string    `json:"integrityHash,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateMessage is the payload for POST /messages
type CreateMessage struct {
	ReceiverID    string `json:"receiverId"`
	Content       string `json:"content"`
	Encrypted     bool   `json:"encrypted"`
	IntegrityHash string `json:"integrityHash,omitempty"`
}

// Reminder is a scheduled notification tied to an appointment
type Reminder struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AppointmentID string    `json:"appointmentId"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	ReminderDate  time.Time `json:"reminderDate"`
	IsRead        bool      `json:"isRead"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateReminder is the payload for POST /reminders
type CreateReminder struct {
	UserID        string    `json:"userId"`
	AppointmentID string    `json:"appointmentId"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	ReminderDate  time.Time `json:"reminderDate"`
}
