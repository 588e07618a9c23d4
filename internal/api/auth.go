// ABOUTME: Auth endpoint calls: login, registration, logout, password reset
// ABOUTME: Also the raw refresh-token exchange used by the session coordinator

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/GramosTV/zelqora-client/internal/models"
)

// Login exchanges credentials for a user record and a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" || resp.User == nil {
		return nil, fmt.Errorf("malformed login response: missing user or tokens")
	}
	return &resp, nil
}

// Register creates an account and returns the same shape as Login.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" || resp.User == nil {
		return nil, fmt.Errorf("malformed register response: missing user or tokens")
	}
	return &resp, nil
}

// Logout asks the backend to invalidate the session. Callers treat this
// as best-effort; local state is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// ExchangeRefreshToken swaps a refresh token for a new pair. Persistence
// and single-flight coalescing live in the session coordinator, not here.
func (c *Client) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/refresh-token", nil, models.RefreshRequest{RefreshToken: refreshToken}, &pair)
	if err != nil {
		return nil, err
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, fmt.Errorf("malformed refresh response: missing tokens")
	}
	return &pair, nil
}

// RequestPasswordReset starts the reset flow for an email address.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/request-password-reset", nil, models.PasswordResetRequest{Email: email}, nil)
}

// ResetPassword completes the reset flow with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", nil, models.PasswordReset{Token: resetToken, NewPassword: newPassword}, nil)
}
