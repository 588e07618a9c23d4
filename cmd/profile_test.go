// ABOUTME: Tests for the profile commands
// ABOUTME: Verifies show, partial updates, and picture upload against a fake backend

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GramosTV/zelqora-client/internal/models"
)

func TestProfileShow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/u-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{
			ID: "u-1", Email: "pat@example.com", FirstName: "Pat", LastName: "Doe",
			Role: models.RolePatient, ProfilePicture: "/uploads/u-1.png",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sessionFile := setupEnv(t, server.URL)
	loggedIn(t, sessionFile, &models.User{ID: "u-1", Email: "pat@example.com", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient})

	var buf bytes.Buffer
	if exitCode := runProfileShow(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("exit code = %d, output: %s", exitCode, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "pat@example.com") || !strings.Contains(out, "/uploads/u-1.png") {
		t.Errorf("output = %q", out)
	}
}

func TestProfileUpdate(t *testing.T) {
	var gotFields map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/users/u-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			if err := json.NewDecoder(r.Body).Decode(&gotFields); err != nil {
				t.Errorf("decode patch body: %v", err)
			}
			json.NewEncoder(w).Encode(models.User{ID: "u-1", FirstName: "Patricia", LastName: "Doe", Role: models.RolePatient})
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: "u-1", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sessionFile := setupEnv(t, server.URL)
	loggedIn(t, sessionFile, &models.User{ID: "u-1", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient})

	profileFirstName = "Patricia"
	defer func() { profileFirstName = "" }()

	var buf bytes.Buffer
	if exitCode := runProfileUpdate(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("exit code = %d, output: %s", exitCode, buf.String())
	}

	if len(gotFields) != 1 || gotFields["firstName"] != "Patricia" {
		t.Errorf("patch body = %v, want only firstName", gotFields)
	}
	if !strings.Contains(buf.String(), "Profile updated for Patricia Doe") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestProfileUpdate_NothingToUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: "u-1", Role: models.RolePatient})
	}))
	defer server.Close()

	sessionFile := setupEnv(t, server.URL)
	loggedIn(t, sessionFile, &models.User{ID: "u-1", Role: models.RolePatient})

	var buf bytes.Buffer
	if exitCode := runProfileUpdate(context.Background(), &buf); exitCode == 0 {
		t.Fatal("update without flags exited 0")
	}
	if !strings.Contains(buf.String(), "nothing to update") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestProfileUploadPicture(t *testing.T) {
	var gotFilename, gotContent string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/u-1/profile-picture", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("parse upload: %v", err)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		if data, err := io.ReadAll(file); err == nil {
			gotContent = string(data)
		}
		json.NewEncoder(w).Encode(models.User{ID: "u-1", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient, ProfilePicture: "/uploads/u-1.png"})
	})
	mux.HandleFunc("/users/u-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: "u-1", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sessionFile := setupEnv(t, server.URL)
	loggedIn(t, sessionFile, &models.User{ID: "u-1", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient})

	picture := filepath.Join(t.TempDir(), "avatar.png")
	if err := os.WriteFile(picture, []byte("png-bytes"), 0o600); err != nil {
		t.Fatalf("write picture: %v", err)
	}

	var buf bytes.Buffer
	if exitCode := runProfileUploadPicture(context.Background(), &buf, picture); exitCode != 0 {
		t.Fatalf("exit code = %d, output: %s", exitCode, buf.String())
	}

	if gotFilename != "avatar.png" {
		t.Errorf("uploaded filename = %q, want avatar.png", gotFilename)
	}
	if gotContent != "png-bytes" {
		t.Errorf("uploaded content = %q", gotContent)
	}
	if !strings.Contains(buf.String(), "Profile picture uploaded") {
		t.Errorf("output = %q", buf.String())
	}
}
