// ABOUTME: User endpoint calls: profiles, the doctor/patient directory, search
// ABOUTME: Doctor directory reads go through a short-lived cache

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/GramosTV/zelqora-client/internal/models"
)

// User fetches a profile by ID.
func (c *Client) User(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Users lists all users (admin view).
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Doctors lists doctor accounts, cached briefly since the directory is
// read on every appointment-creation flow.
func (c *Client) Doctors(ctx context.Context) ([]models.User, error) {
	if cached, ok := c.doctors.Get("doctors"); ok {
		return cached, nil
	}
	users, err := c.usersByRole(ctx, models.RoleDoctor)
	if err != nil {
		return nil, err
	}
	c.doctors.Set("doctors", users)
	return users, nil
}

// Patients lists patient accounts.
func (c *Client) Patients(ctx context.Context) ([]models.User, error) {
	return c.usersByRole(ctx, models.RolePatient)
}

func (c *Client) usersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	query := url.Values{}
	query.Set("role", string(role))
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsers queries the directory by name or email fragment.
func (c *Client) SearchUsers(ctx context.Context, q string) ([]models.User, error) {
	query := url.Values{}
	query.Set("search", q)
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users/search", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser patches profile fields. fields maps JSON field names to new
// values so partial updates stay partial.
func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+id, nil, fields, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes an account (admin only).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}

// UploadProfilePicture sends an image as multipart form data.
func (c *Client) UploadProfilePicture(ctx context.Context, id, filename string, content io.Reader) (*models.User, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/users/" + id + "/profile-picture"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var u models.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return &u, nil
}
