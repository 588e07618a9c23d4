// ABOUTME: Durable session store for tokens and the cached user profile
// ABOUTME: JSON file under the user config dir, written atomically via rename

package keystore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/GramosTV/zelqora-client/internal/models"
)

// sessionFile is the on-disk layout. Keys match what the web client
// keeps in local storage.
type sessionFile struct {
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	CurrentUser  *models.User `json:"currentUser,omitempty"`
}

// Store persists the access/refresh token pair and the cached profile.
// All writes replace the whole file through a temp-file rename, so a
// reader never observes a half-updated token pair.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// SaveTokens writes both token values, replacing prior values. The pair
// is persisted together; there is no partial-update state.
func (s *Store) SaveTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.load()
	f.AccessToken = accessToken
	f.RefreshToken = refreshToken
	return s.write(f)
}

// AccessToken returns the stored access token, or "" if never set or cleared.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().AccessToken
}

// RefreshToken returns the stored refresh token, or "" if never set or cleared.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().RefreshToken
}

// SaveUser caches the user profile alongside the tokens.
func (s *Store) SaveUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.load()
	f.CurrentUser = u
	return s.write(f)
}

// User returns the cached profile, or nil if absent.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().CurrentUser
}

// Clear removes tokens and the cached profile together. Idempotent:
// clearing an empty store is a no-op and never fails.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// load reads the session file. A missing or unreadable file is treated
// as an empty session (fail-closed).
func (s *Store) load() sessionFile {
	var f sessionFile
	data, err := os.ReadFile(s.path)
	if err != nil {
		return f
	}
	if err := json.Unmarshal(data, &f); err != nil {
		slog.Warn("Session file is corrupt, treating as empty", "path", s.path, "error", err)
		return sessionFile{}
	}
	return f
}

// write persists the session atomically: marshal, write a temp file in
// the same directory, then rename over the target.
func (s *Store) write(f sessionFile) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
