package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// The store holds two opaque key→string slots: the API credential and the
// notes document in markup form. There is no schema versioning; values are
// read once at startup and overwritten on every change.
const (
	KeyAPIKey = "api_key"
	KeyNotes  = "notes"
)

// Store is a file-per-key string store rooted at a single directory.
type Store struct {
	dir string
}

// DefaultDir returns the musepad state directory inside the user's home
// directory.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".musepad"), nil
}

// New opens a store at the directory, creating it if needed.
func New(dir string) (*Store, error) {
	if _, err := ensureDirExists(dir); err != nil {
		return nil, err
	}

	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load returns the stored value for the key. A missing key reads as the
// empty string, not an error.
func (s *Store) Load(key string) (string, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Save overwrites the value for the key.
func (s *Store) Save(key, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0600)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}

// ensureDirExists ensures that a directory exists, and if it isn't present, it tries to create a new one.
func ensureDirExists(path string) (bool, error) {
	// Check if the directory exists
	if _, err := os.Stat(path); err == nil {
		return true, nil
	}

	// Create the directory
	err := os.MkdirAll(path, 0700)
	if err != nil {
		return false, err
	}

	return true, nil
}
