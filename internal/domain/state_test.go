package domain

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     IncidentState
		to       IncidentState
		expected bool
	}{
		{"created to active", IncidentStateCreated, IncidentStateActive, true},
		{"active to investigating", IncidentStateActive, IncidentStateInvestigating, true},
		{"active to resolved", IncidentStateActive, IncidentStateResolved, true},
		{"investigating to resolved", IncidentStateInvestigating, IncidentStateResolved, true},
		{"resolved to archived", IncidentStateResolved, IncidentStateArchived, true},
		{"created to resolved", IncidentStateCreated, IncidentStateResolved, false},
		{"created to investigating", IncidentStateCreated, IncidentStateInvestigating, false},
		{"investigating to active", IncidentStateInvestigating, IncidentStateActive, false},
		{"resolved to active", IncidentStateResolved, IncidentStateActive, false},
		{"resolved to resolved", IncidentStateResolved, IncidentStateResolved, false},
		{"archived is terminal", IncidentStateArchived, IncidentStateActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestTransition_UpdatesStateAndTimestamp(t *testing.T) {
	created := time.Now().UTC().Add(-time.Hour)
	incident := &Incident{
		ID:        1,
		Title:     "db outage",
		State:     IncidentStateCreated,
		CreatedAt: created,
		UpdatedAt: created,
	}

	if err := Transition(incident, IncidentStateActive); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if incident.State != IncidentStateActive {
		t.Errorf("expected state active, got %s", incident.State)
	}
	if !incident.UpdatedAt.After(created) {
		t.Error("expected UpdatedAt to be refreshed")
	}
}

func TestTransition_IllegalLeavesIncidentUnchanged(t *testing.T) {
	updated := time.Now().UTC().Add(-time.Hour)
	incident := &Incident{
		ID:        1,
		State:     IncidentStateResolved,
		UpdatedAt: updated,
	}

	err := Transition(incident, IncidentStateInvestigating)
	if err == nil {
		t.Fatal("expected error for illegal transition")
	}
	if !IsIllegalTransition(err) {
		t.Errorf("expected IllegalTransitionError, got %T", err)
	}
	if incident.State != IncidentStateResolved {
		t.Errorf("state mutated on illegal transition: %s", incident.State)
	}
	if !incident.UpdatedAt.Equal(updated) {
		t.Error("UpdatedAt mutated on illegal transition")
	}
}

func TestParseIncidentState(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"created", false},
		{"active", false},
		{"investigating", false},
		{"resolved", false},
		{"archived", false},
		{"ACTIVE", true},
		{"open", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseIncidentState(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseIncidentState(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
