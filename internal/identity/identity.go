// Package identity manages the operator identity bound to this
// machine, used for accountability on incident records.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const identityFileName = "identity.json"

// Identity describes the operator and machine this installation is
// associated with.
type Identity struct {
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Org         string    `json:"org,omitempty"`
	Hostname    string    `json:"hostname"`
	OSUser      string    `json:"os_user"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

// Fingerprint derives a stable short identifier for a host/user pair.
func Fingerprint(hostname, osUser string) string {
	sum := sha256.Sum256([]byte(hostname + ":" + osUser))
	return hex.EncodeToString(sum[:])[:12]
}

// Store reads and writes the identity record under the data directory.
type Store struct {
	baseDir string
}

// NewStore creates an identity store rooted at the given data directory.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) path() string {
	return filepath.Join(s.baseDir, identityFileName)
}

// Save persists the identity with owner-only permissions on both the
// directory (0700) and the file (0600).
func (s *Store) Save(id *Identity) error {
	if err := os.MkdirAll(s.baseDir, 0700); err != nil {
		return fmt.Errorf("failed to create identity directory: %w", err)
	}

	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write identity: %w", err)
	}
	return nil
}

// Load returns the stored identity, or nil when the file is missing,
// corrupt, or schema-incompatible.
func (s *Store) Load() *Identity {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil
	}
	if id.Email == "" || id.Hostname == "" {
		return nil
	}
	return &id
}
