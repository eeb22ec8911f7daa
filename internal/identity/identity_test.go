package identity

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFingerprint_StableAndShort(t *testing.T) {
	a := Fingerprint("host-1", "alice")
	b := Fingerprint("host-1", "alice")
	c := Fingerprint("host-2", "alice")

	if a != b {
		t.Error("fingerprint not stable for same host/user")
	}
	if a == c {
		t.Error("different hosts produced the same fingerprint")
	}
	if len(a) != 12 {
		t.Errorf("expected 12-char fingerprint, got %d", len(a))
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	id := &Identity{
		UserID:      "alice@example.com",
		Name:        "Alice",
		Email:       "alice@example.com",
		Hostname:    "host-1",
		OSUser:      "alice",
		Fingerprint: Fingerprint("host-1", "alice"),
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.Save(id); err != nil {
		t.Fatal(err)
	}

	loaded := store.Load()
	if loaded == nil {
		t.Fatal("expected identity to load")
	}
	if loaded.Email != "alice@example.com" || loaded.Fingerprint != id.Fingerprint {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestStore_LoadCorruptOrIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"corrupt json", "{nope"},
		{"missing email", `{"name": "Alice", "hostname": "host-1"}`},
		{"missing hostname", `{"name": "Alice", "email": "a@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "identity.json"), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if NewStore(dir).Load() != nil {
				t.Error("expected nil for unusable identity file")
			}
		})
	}
}

func TestInitFlow_CreatesIdentity(t *testing.T) {
	store := NewStore(t.TempDir())
	var out bytes.Buffer
	flow := &InitFlow{
		Store: store,
		In:    strings.NewReader("Alice Smith\nalice@example.com\nAcme\n"),
		Out:   &out,
	}

	if err := flow.Run(); err != nil {
		t.Fatal(err)
	}

	id := store.Load()
	if id == nil {
		t.Fatal("identity not persisted")
	}
	if id.Name != "Alice Smith" || id.Email != "alice@example.com" || id.Org != "Acme" {
		t.Errorf("unexpected identity: %+v", id)
	}
	if id.Fingerprint == "" {
		t.Error("fingerprint missing")
	}
	if !strings.Contains(out.String(), "initialized successfully") {
		t.Errorf("missing success output: %s", out.String())
	}
}

func TestInitFlow_RequiresNameAndEmail(t *testing.T) {
	store := NewStore(t.TempDir())
	flow := &InitFlow{
		Store: store,
		In:    strings.NewReader("\n\n\n"),
		Out:   &bytes.Buffer{},
	}

	if err := flow.Run(); err == nil {
		t.Fatal("expected error when name and email are empty")
	}
	if store.Load() != nil {
		t.Error("identity persisted despite validation failure")
	}
}

func TestInitFlow_AbortKeepsExistingIdentity(t *testing.T) {
	store := NewStore(t.TempDir())
	existing := &Identity{
		Name:      "Alice",
		Email:     "alice@example.com",
		Hostname:  "host-1",
		OSUser:    "alice",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Save(existing); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	flow := &InitFlow{Store: store, In: strings.NewReader("n\n"), Out: &out}
	if err := flow.Run(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "Initialization aborted") {
		t.Errorf("expected abort message, got: %s", out.String())
	}
	loaded := store.Load()
	if loaded == nil || loaded.Name != "Alice" {
		t.Error("existing identity lost after aborted init")
	}
}
