package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opsverdict/opsverdict/internal/domain"
)

// IncidentStore owns the durable incident records. It accepts a db
// handle rather than using a package global to support transaction
// contexts and in-memory test databases.
type IncidentStore struct {
	db *gorm.DB
}

// NewIncidentStore creates an incident store on the given database.
func NewIncidentStore(db *gorm.DB) *IncidentStore {
	return &IncidentStore{db: db}
}

// Create allocates the next incident id and persists a new record in
// the given initial state. Ids are max(existing)+1 so they stay
// monotonic and are never reused, even across gaps.
func (s *IncidentStore) Create(title string, initialState domain.IncidentState) (*domain.Incident, error) {
	now := time.Now().UTC()
	incident := &domain.Incident{
		Title:     title,
		UUID:      uuid.NewString(),
		State:     initialState,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var maxID int
		row := tx.Model(&Incident{}).Select("COALESCE(MAX(id), 0)").Row()
		if err := row.Scan(&maxID); err != nil {
			return fmt.Errorf("failed to allocate incident id: %w", err)
		}
		incident.ID = maxID + 1
		return tx.Create(FromDomain(incident)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}
	return incident, nil
}

// Save overwrites the full incident record. Idempotent.
func (s *IncidentStore) Save(incident *domain.Incident) error {
	if err := s.db.Save(FromDomain(incident)).Error; err != nil {
		return fmt.Errorf("failed to save incident %d: %w", incident.ID, err)
	}
	return nil
}

// Load returns the incident with the given id, or nil if it does not
// exist. Callers translate nil into a domain error.
func (s *IncidentStore) Load(id int) (*domain.Incident, error) {
	var record Incident
	err := s.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load incident %d: %w", id, err)
	}
	return record.ToDomain(), nil
}

// List returns all incidents ordered by id ascending.
func (s *IncidentStore) List() ([]*domain.Incident, error) {
	var records []Incident
	if err := s.db.Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	incidents := make([]*domain.Incident, 0, len(records))
	for i := range records {
		incidents = append(incidents, records[i].ToDomain())
	}
	return incidents, nil
}
