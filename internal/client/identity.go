package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Identity is the locally cached user identifier and email. Best-effort
// cache only, never the source of truth.
type Identity struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

// IdentityStore persists the identity as a JSON file next to the draft.
type IdentityStore struct {
	path string
}

// NewIdentityStore creates an identity store at the given path.
func NewIdentityStore(path string) *IdentityStore {
	return &IdentityStore{path: path}
}

// Load returns the cached identity, or nil when absent or corrupt.
func (s *IdentityStore) Load() (*Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil || id.UserID == uuid.Nil {
		// corrupt cache: silently discard
		_ = s.Clear()
		return nil, nil
	}
	return &id, nil
}

// Save writes the identity, creating the parent directory if needed.
func (s *IdentityStore) Save(id *Identity) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the identity file.
func (s *IdentityStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
