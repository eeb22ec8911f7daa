// Package session persists the pointer binding the current interactive
// caller to an incident. The pointer is a single named record with an
// explicit lifecycle: created on attach, destroyed on detach/resolve.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const sessionFileName = "session.json"

// Pointer records which incident the current session is bound to.
type Pointer struct {
	AttachedIncidentID int       `json:"attached_incident_id"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Store reads and writes the session pointer under the data directory.
type Store struct {
	baseDir string
}

// NewStore creates a session store rooted at the given data directory.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) path() string {
	return filepath.Join(s.baseDir, sessionFileName)
}

// Save writes the session pointer. The data directory is created with
// owner-only permissions and the file itself is owner read/write.
func (s *Store) Save(incidentID int) error {
	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	pointer := Pointer{
		AttachedIncidentID: incidentID,
		UpdatedAt:          time.Now().UTC(),
	}
	data, err := json.MarshalIndent(pointer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session pointer: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write session pointer: %w", err)
	}
	return nil
}

// Load returns the attached incident id, or false when no session is
// attached. A missing or corrupt file reads as absent.
func (s *Store) Load() (int, bool) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return 0, false
	}

	var pointer Pointer
	if err := json.Unmarshal(data, &pointer); err != nil {
		return 0, false
	}
	if pointer.AttachedIncidentID < 1 {
		return 0, false
	}
	return pointer.AttachedIncidentID, true
}

// Clear removes the session pointer. Clearing an absent pointer is a
// no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session pointer: %w", err)
	}
	return nil
}
