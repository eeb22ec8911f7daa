package database

import (
	"time"

	"github.com/opsverdict/opsverdict/internal/domain"
)

// Incident is the durable record backing a domain incident. Timestamps
// are managed by the incident store, not by gorm: updated_at must move
// only on state changes.
type Incident struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UUID      string    `gorm:"uniqueIndex;size:36;not null" json:"uuid"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	State     string    `gorm:"type:varchar(32);not null" json:"state"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Incident) TableName() string {
	return "incidents"
}

// ToDomain converts the record into its in-memory domain form. A
// malformed state column degrades to CREATED rather than failing the
// load.
func (i *Incident) ToDomain() *domain.Incident {
	state, err := domain.ParseIncidentState(i.State)
	if err != nil {
		state = domain.IncidentStateCreated
	}
	return &domain.Incident{
		ID:        i.ID,
		UUID:      i.UUID,
		Title:     i.Title,
		State:     state,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// FromDomain builds the durable record for an in-memory incident.
func FromDomain(inc *domain.Incident) *Incident {
	return &Incident{
		ID:        inc.ID,
		UUID:      inc.UUID,
		Title:     inc.Title,
		State:     string(inc.State),
		CreatedAt: inc.CreatedAt,
		UpdatedAt: inc.UpdatedAt,
	}
}

// TimelineEvent is one entry in an incident's append-only audit trail.
// Rows are inserted and read back in creation order, never mutated.
type TimelineEvent struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	IncidentID int       `gorm:"not null;index" json:"incident_id"`
	EventType  string    `gorm:"type:varchar(32);not null" json:"event_type"`
	Message    string    `gorm:"type:text" json:"message"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
}

func (TimelineEvent) TableName() string {
	return "timeline_events"
}

// HistoryEntry is a policy-accepted reasoning output recorded verbatim
// in the incident's transcript. Append-only, same ordering rule as the
// timeline.
type HistoryEntry struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	IncidentID int       `gorm:"not null;index" json:"incident_id"`
	Role       string    `gorm:"type:varchar(32);not null" json:"role"`
	Content    string    `gorm:"type:text" json:"content"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
}

func (HistoryEntry) TableName() string {
	return "history_entries"
}

// RollingSummary is the single condensed context string per incident,
// overwritten each time the summarizer or resolver produces new output.
type RollingSummary struct {
	IncidentID int       `gorm:"primaryKey" json:"incident_id"`
	Summary    string    `gorm:"type:text" json:"summary"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (RollingSummary) TableName() string {
	return "rolling_summaries"
}

// APIKey stores one bcrypt-hashed API key accepted by the HTTP façade.
// Plaintext keys never touch the database.
type APIKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(128)" json:"name"`
	KeyHash   string    `gorm:"type:varchar(128);not null" json:"-"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

func (APIKey) TableName() string {
	return "api_keys"
}
