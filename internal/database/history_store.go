package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryStore owns the per-incident reasoning transcript and the
// rolling summary. Both are written only after a reasoning call has
// passed policy; the orchestrator enforces that rule.
type HistoryStore struct {
	db *gorm.DB
}

// NewHistoryStore creates a history store on the given database.
func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Append records a policy-accepted reasoning output verbatim.
func (s *HistoryStore) Append(incidentID int, role, content string) error {
	entry := &HistoryEntry{
		IncidentID: incidentID,
		Role:       role,
		Content:    content,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append history entry for incident %d: %w", incidentID, err)
	}
	return nil
}

// Load returns the transcript in append order, empty if absent.
func (s *HistoryStore) Load(incidentID int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := s.db.Where("incident_id = ?", incidentID).Order("id asc").Find(&entries).Error
	if err != nil {
		return []HistoryEntry{}, nil
	}
	return entries, nil
}

// SetSummary overwrites the incident's rolling summary.
func (s *HistoryStore) SetSummary(incidentID int, summary string) error {
	record := &RollingSummary{
		IncidentID: incidentID,
		Summary:    summary,
		UpdatedAt:  time.Now().UTC(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "incident_id"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to set summary for incident %d: %w", incidentID, err)
	}
	return nil
}

// GetSummary returns the incident's rolling summary. The second return
// value is false when no summary has been written yet.
func (s *HistoryStore) GetSummary(incidentID int) (string, bool, error) {
	var record RollingSummary
	err := s.db.First(&record, "incident_id = ?", incidentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load summary for incident %d: %w", incidentID, err)
	}
	return record.Summary, true, nil
}
