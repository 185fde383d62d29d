package wizard

import (
	"encoding/json"
	"os"
	"path/filepath"

	"invested/internal/survey"
)

// Draft is the locally cached in-progress survey state. It is advisory only;
// the server record is authoritative once submitted.
type Draft struct {
	CurrentQuestionIndex int                     `json:"currentQuestionIndex"`
	Answers              map[string]survey.Value `json:"answers"`
}

// Valid checks the draft's structural shape: index in range and answers
// present as a mapping. Invalid drafts must be discarded, not repaired.
func (d *Draft) Valid(numQuestions int) bool {
	if d == nil {
		return false
	}
	if d.CurrentQuestionIndex < 0 || d.CurrentQuestionIndex >= numQuestions {
		return false
	}
	return d.Answers != nil
}

// DraftStore persists in-progress survey state between runs.
type DraftStore interface {
	// Load returns the stored draft, or nil when none exists. Corrupt
	// payloads are treated as absent and cleared.
	Load() (*Draft, error)
	Save(d *Draft) error
	Clear() error
}

// FileStore keeps the draft as a JSON file, playing the role browser local
// storage plays for the web client.
type FileStore struct {
	path string
}

// NewFileStore creates a draft store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the draft file.
func (s *FileStore) Load() (*Draft, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		// corrupt cache: silently discard
		_ = s.Clear()
		return nil, nil
	}
	return &d, nil
}

// Save writes the draft, creating the parent directory if needed.
func (s *FileStore) Save(d *Draft) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the draft file.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
