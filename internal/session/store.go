package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lovelace-project/lovelace-cli/internal/api"
)

// Record is the persisted session state: the bearer token plus the last
// authenticated user record. Both must be present for a stored session to be
// considered valid.
type Record struct {
	AccessToken string            `json:"access_token,omitempty"`
	User        *api.AuthResponse `json:"user,omitempty"`
}

// DefaultPath returns the path of the session file (~/.lovelace/session.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".lovelace", "session.json"), nil
}

// Store persists the session record to a JSON file with restricted
// permissions.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored session. A missing file yields an empty record.
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Record{}, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return &rec, nil
}

// Save writes the session record to disk.
func (s *Store) Save(rec *Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
