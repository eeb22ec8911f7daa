package database

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/opsverdict/opsverdict/internal/domain"
)

func TestSeedAPIKeys_HashesAndReplaces(t *testing.T) {
	db := testDB(t)

	if err := SeedAPIKeys(db, []string{"alpha", " ", "beta"}); err != nil {
		t.Fatal(err)
	}

	hashes, err := LoadAPIKeyHashes(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(hashes) != 2 {
		t.Fatalf("expected 2 keys after seeding, got %d", len(hashes))
	}
	for _, hash := range hashes {
		if hash == "alpha" || hash == "beta" {
			t.Error("plaintext key stored in database")
		}
	}
	if bcrypt.CompareHashAndPassword([]byte(hashes[0]), []byte("alpha")) != nil {
		t.Error("stored hash does not match original key")
	}

	// Reseeding replaces, not appends.
	if err := SeedAPIKeys(db, []string{"gamma"}); err != nil {
		t.Fatal(err)
	}
	hashes, err = LoadAPIKeyHashes(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(hashes) != 1 {
		t.Fatalf("expected 1 key after reseed, got %d", len(hashes))
	}
}

func TestIncidentToDomain_MalformedStateDegradesToCreated(t *testing.T) {
	record := &Incident{ID: 1, UUID: "u", Title: "t", State: "exploded"}

	incident := record.ToDomain()

	if incident.State != domain.IncidentStateCreated {
		t.Errorf("expected malformed state to degrade to created, got %s", incident.State)
	}
}
