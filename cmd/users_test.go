// ABOUTME: Tests for the users admin commands
// ABOUTME: Verifies directory listing by role and account deletion

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GramosTV/zelqora-client/internal/models"
)

func TestUsersList(t *testing.T) {
	var gotRole string
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.URL.Query().Get("role")
		json.NewEncoder(w).Encode([]models.User{
			{ID: "u-1", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient, Email: "pat@example.com"},
			{ID: "d-1", FirstName: "Greg", LastName: "House", Role: models.RoleDoctor, Email: "greg@example.com"},
		})
	})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: "adm-1", Role: models.RoleAdmin})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sessionFile := setupEnv(t, server.URL)
	loggedIn(t, sessionFile, &models.User{ID: "adm-1", Role: models.RoleAdmin})

	var buf bytes.Buffer
	if exitCode := runUsersList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("exit code = %d, output: %s", exitCode, buf.String())
	}

	if gotRole != "" {
		t.Errorf("role query = %q, want none for the unfiltered listing", gotRole)
	}
	out := buf.String()
	if !strings.Contains(out, "Pat Doe") || !strings.Contains(out, "Greg House") {
		t.Errorf("output = %q", out)
	}
}

func TestUsersList_ByRole(t *testing.T) {
	var gotRole string
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.URL.Query().Get("role")
		json.NewEncoder(w).Encode([]models.User{
			{ID: "u-1", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient, Email: "pat@example.com"},
		})
	})
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: "adm-1", Role: models.RoleAdmin})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sessionFile := setupEnv(t, server.URL)
	loggedIn(t, sessionFile, &models.User{ID: "adm-1", Role: models.RoleAdmin})

	usersRole = "patient"
	defer func() { usersRole = "" }()

	var buf bytes.Buffer
	if exitCode := runUsersList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("exit code = %d, output: %s", exitCode, buf.String())
	}

	if gotRole != "patient" {
		t.Errorf("role query = %q, want patient", gotRole)
	}
	if !strings.Contains(buf.String(), "Pat Doe") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestUsersList_UnknownRole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: "adm-1", Role: models.RoleAdmin})
	}))
	defer server.Close()

	sessionFile := setupEnv(t, server.URL)
	loggedIn(t, sessionFile, &models.User{ID: "adm-1", Role: models.RoleAdmin})

	usersRole = "janitor"
	defer func() { usersRole = "" }()

	var buf bytes.Buffer
	if exitCode := runUsersList(context.Background(), &buf); exitCode == 0 {
		t.Fatal("listing with an unknown role exited 0")
	}
	if !strings.Contains(buf.String(), "unknown role") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestUsersDelete(t *testing.T) {
	var gotMethod, gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			gotMethod, gotPath = r.Method, r.URL.Path
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: "adm-1", Role: models.RoleAdmin})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sessionFile := setupEnv(t, server.URL)
	loggedIn(t, sessionFile, &models.User{ID: "adm-1", Role: models.RoleAdmin})

	var buf bytes.Buffer
	if exitCode := runUsersDelete(context.Background(), &buf, "u-9"); exitCode != 0 {
		t.Fatalf("exit code = %d, output: %s", exitCode, buf.String())
	}

	if gotMethod != http.MethodDelete || gotPath != "/users/u-9" {
		t.Errorf("request = %s %s, want DELETE /users/u-9", gotMethod, gotPath)
	}
	if !strings.Contains(buf.String(), "User u-9 deleted") {
		t.Errorf("output = %q", buf.String())
	}
}
