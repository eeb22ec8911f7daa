package domain

import (
	"fmt"
	"time"
)

// IncidentState represents the lifecycle state of an incident
type IncidentState string

const (
	IncidentStateCreated       IncidentState = "created"
	IncidentStateActive        IncidentState = "active"
	IncidentStateInvestigating IncidentState = "investigating"
	IncidentStateResolved      IncidentState = "resolved"
	IncidentStateArchived      IncidentState = "archived"
)

// ParseIncidentState converts a serialized state string into an IncidentState
func ParseIncidentState(s string) (IncidentState, error) {
	switch IncidentState(s) {
	case IncidentStateCreated, IncidentStateActive, IncidentStateInvestigating,
		IncidentStateResolved, IncidentStateArchived:
		return IncidentState(s), nil
	}
	return "", fmt.Errorf("unknown incident state: %q", s)
}

// Incident is the unit of work tracked through its lifecycle states.
// The integer ID is allocated by the incident store and is immutable,
// as is the title (no rename operation exists).
type Incident struct {
	ID        int           `json:"id"`
	UUID      string        `json:"uuid"`
	Title     string        `json:"title"`
	State     IncidentState `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
