// Package storage persists the session's durable client-side state: access
// token, refresh token and a denormalized profile record. Everything lives
// in dotfiles under the state directory (the user's home by default) with
// 0600 permissions and is erased wholesale on logout.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/anudeepmamidala/Banking-System/internal/shared/models"
)

const (
	tokenFile   = ".banking_token"
	refreshFile = ".banking_refresh"
	profileFile = ".banking_profile"
)

// Store reads and writes session state under a fixed directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir; empty dir means the user's home, or
// the working directory when no home can be resolved.
func New(dir string) *Store {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = home
	}
	return &Store{dir: dir}
}

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

func (s *Store) SaveToken(token string) error {
	return os.WriteFile(s.path(tokenFile), []byte(token), 0600)
}

func (s *Store) Token() string {
	return s.readTrimmed(tokenFile)
}

func (s *Store) SaveRefresh(token string) error {
	return os.WriteFile(s.path(refreshFile), []byte(token), 0600)
}

func (s *Store) Refresh() string {
	return s.readTrimmed(refreshFile)
}

func (s *Store) SaveProfile(u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(profileFile), b, 0600)
}

// Profile returns the persisted profile, or false when none is stored.
func (s *Store) Profile() (models.User, bool) {
	b, err := os.ReadFile(s.path(profileFile))
	if err != nil {
		return models.User{}, false
	}
	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return models.User{}, false
	}
	return u, true
}

// Clear removes every persisted file; missing files are not an error.
func (s *Store) Clear() error {
	var errs []error
	for _, name := range []string{tokenFile, refreshFile, profileFile} {
		if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) readTrimmed(name string) string {
	b, err := os.ReadFile(s.path(name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
