// ABOUTME: Auth request/response models exchanged with the /auth endpoints
// ABOUTME: Defines login, registration, and token pair contracts

package models

// LoginRequest carries credentials for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields for POST /auth/register
type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           Role   `json:"role"`
	Specialization string `json:"specialization,omitempty"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenPair is returned by POST /auth/refresh-token
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshRequest is the body of POST /auth/refresh-token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// PasswordResetRequest starts the reset flow
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordReset completes the reset flow with the emailed token
type PasswordReset struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
