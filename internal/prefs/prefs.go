// Package prefs persists the logged-in user in a private key-value file.
// It holds exactly one record under a fixed key; saving overwrites it.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/h0rv/ghbrowse/internal/domain"
	"go.etcd.io/bbolt"
)

const (
	bucketName = "user_prefs"   // the private preference area
	keyUser    = "current_user" // key: "current_user" -> User JSON
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("preference store closed")

// Store is a single-key preference store backed by bbolt.
type Store struct {
	db     *bbolt.DB
	logger *slog.Logger
}

// DefaultPath returns the preference file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "ghbrowse", "prefs.db"), nil
}

// Open opens (or creates) the preference file at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create preference directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize preference store: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// SaveUser serializes user and writes it under the fixed key.
func (s *Store) SaveUser(user domain.User) error {
	if s.db == nil {
		return ErrClosed
	}

	data, err := json.Marshal(&user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(keyUser), data)
	}); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Debug("saved user", slog.String("login", user.Login))
	return nil
}

// CachedUser returns the stored user. Any fault (missing key, read error,
// corrupt JSON, record without a login) is reported as no user.
func (s *Store) CachedUser() (*domain.User, bool) {
	if s.db == nil {
		return nil, false
	}

	var user domain.User
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(keyUser))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &user); err != nil {
			return err
		}
		found = user.Login != ""
		return nil
	})
	if err != nil {
		s.logger.Debug("ignoring unreadable cached user", slog.String("error", err.Error()))
		return nil, false
	}
	if !found {
		return nil, false
	}

	return &user, true
}

// ClearUser deletes the cached user. Clearing an absent record is not an error.
func (s *Store) ClearUser() error {
	if s.db == nil {
		return ErrClosed
	}

	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(keyUser))
	}); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
