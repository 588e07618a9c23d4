// ABOUTME: Tests for the on-disk session store
// ABOUTME: Verifies persistence, atomic writes, and idempotent clearing

package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GramosTV/zelqora-client/internal/models"
)

func TestStore_SaveAndLoadTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(path)

	if err := s.SaveTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SaveTokens failed: %v", err)
	}

	if got := s.AccessToken(); got != "access-1" {
		t.Errorf("AccessToken = %q, want %q", got, "access-1")
	}
	if got := s.RefreshToken(); got != "refresh-1" {
		t.Errorf("RefreshToken = %q, want %q", got, "refresh-1")
	}

	// A fresh store reading the same file sees the same tokens.
	s2 := New(path)
	if got := s2.AccessToken(); got != "access-1" {
		t.Errorf("reloaded AccessToken = %q, want %q", got, "access-1")
	}
}

func TestStore_SaveTokens_ReplacesBoth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(path)

	if err := s.SaveTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SaveTokens failed: %v", err)
	}
	if err := s.SaveTokens("access-2", "refresh-2"); err != nil {
		t.Fatalf("SaveTokens failed: %v", err)
	}

	if got := s.AccessToken(); got != "access-2" {
		t.Errorf("AccessToken = %q, want %q", got, "access-2")
	}
	if got := s.RefreshToken(); got != "refresh-2" {
		t.Errorf("RefreshToken = %q, want %q", got, "refresh-2")
	}
}

func TestStore_SaveUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(path)

	user := &models.User{ID: "u-1", Email: "pat@example.com", FirstName: "Pat", LastName: "Doe", Role: models.RolePatient}
	if err := s.SaveUser(user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	got := New(path).User()
	if got == nil {
		t.Fatal("User returned nil after SaveUser")
	}
	if got.ID != "u-1" || got.Email != "pat@example.com" {
		t.Errorf("User = %+v, want ID u-1, email pat@example.com", got)
	}
}

func TestStore_SaveUser_KeepsTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(path)

	if err := s.SaveTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SaveTokens failed: %v", err)
	}
	if err := s.SaveUser(&models.User{ID: "u-1"}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	if got := s.AccessToken(); got != "access-1" {
		t.Errorf("AccessToken = %q after SaveUser, want %q", got, "access-1")
	}
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(path)

	if err := s.SaveTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SaveTokens failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if got := s.AccessToken(); got != "" {
		t.Errorf("AccessToken = %q after Clear, want empty", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still exists after Clear")
	}

	// Clearing again is not an error.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestStore_EmptyWhenFileMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist.json"))

	if got := s.AccessToken(); got != "" {
		t.Errorf("AccessToken = %q, want empty", got)
	}
	if got := s.User(); got != nil {
		t.Errorf("User = %+v, want nil", got)
	}
}

func TestStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	s := New(path)
	if got := s.AccessToken(); got != "" {
		t.Errorf("AccessToken = %q from corrupt file, want empty", got)
	}

	// Saving over a corrupt file recovers it.
	if err := s.SaveTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SaveTokens over corrupt file failed: %v", err)
	}
	if got := New(path).AccessToken(); got != "access-1" {
		t.Errorf("AccessToken = %q, want %q", got, "access-1")
	}
}

func TestStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(path)

	if err := s.SaveTokens("access-1", "refresh-1"); err != nil {
		t.Fatalf("SaveTokens failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}
