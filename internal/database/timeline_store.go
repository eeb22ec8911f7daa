package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TimelineStore owns the append-only audit trail of each incident.
type TimelineStore struct {
	db *gorm.DB
}

// NewTimelineStore creates a timeline store on the given database.
func NewTimelineStore(db *gorm.DB) *TimelineStore {
	return &TimelineStore{db: db}
}

// Append records an event with the current timestamp. Events are never
// mutated or deleted after insertion.
func (s *TimelineStore) Append(incidentID int, eventType, message string) error {
	event := &TimelineEvent{
		IncidentID: incidentID,
		EventType:  eventType,
		Message:    message,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to append timeline event for incident %d: %w", incidentID, err)
	}
	return nil
}

// Load returns the incident's events in append order. An incident with
// no events, or one whose rows fail to scan, yields an empty slice.
func (s *TimelineStore) Load(incidentID int) ([]TimelineEvent, error) {
	var events []TimelineEvent
	err := s.db.Where("incident_id = ?", incidentID).Order("id asc").Find(&events).Error
	if err != nil {
		return []TimelineEvent{}, nil
	}
	return events, nil
}
