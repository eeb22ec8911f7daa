// Package services contains the lifecycle orchestrator: the workflow
// engine that drives the incident state machine, invokes the reasoning
// roles, applies the confidence policy, and keeps persistence in sync.
package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/opsverdict/opsverdict/internal/ai"
	"github.com/opsverdict/opsverdict/internal/database"
	"github.com/opsverdict/opsverdict/internal/domain"
	"github.com/opsverdict/opsverdict/internal/session"
)

// DefaultIncidentTitle is used when a trigger request carries no title.
const DefaultIncidentTitle = "New Incident"

// placeholderSummary seeds the rolling summary on attach when no
// reasoning output has produced one yet.
const placeholderSummary = "No summary available yet."

// LifecycleService orchestrates the five lifecycle operations. Every
// load-mutate-save sequence runs under a per-incident mutex: the store
// save is a blind overwrite, so concurrent writers on the same id would
// otherwise lose updates.
type LifecycleService struct {
	incidents *database.IncidentStore
	timeline  *database.TimelineStore
	history   *database.HistoryStore
	session   *session.Store
	reasoners map[ai.Role]ai.Reasoner
	policy    *ai.ReasoningPolicy

	sessionMu sync.Mutex
	locks     sync.Map // incident id -> *sync.Mutex
}

// NewLifecycleService wires the orchestrator to its collaborators.
func NewLifecycleService(
	incidents *database.IncidentStore,
	timeline *database.TimelineStore,
	history *database.HistoryStore,
	sessionStore *session.Store,
	reasoners map[ai.Role]ai.Reasoner,
	policy *ai.ReasoningPolicy,
) *LifecycleService {
	return &LifecycleService{
		incidents: incidents,
		timeline:  timeline,
		history:   history,
		session:   sessionStore,
		reasoners: reasoners,
		policy:    policy,
	}
}

func (s *LifecycleService) lockIncident(id int) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Trigger creates a new incident, nudges it to ACTIVE, and runs the
// analyzer over it. The new id is returned even when the analysis step
// fails; the incident is usable either way.
func (s *LifecycleService) Trigger(ctx context.Context, title string) domain.TriggerResult {
	if title == "" {
		title = DefaultIncidentTitle
	}

	incident, err := s.incidents.Create(title, domain.IncidentStateCreated)
	if err != nil {
		return domain.TriggerResult{Result: domain.Result{Success: false, Message: err.Error()}}
	}

	unlock := s.lockIncident(incident.ID)
	defer unlock()

	s.logTimeline(incident.ID, "created", fmt.Sprintf("Incident %q created", incident.Title))

	// Best-effort activation; a failure leaves the incident usable in CREATED.
	s.nudge(incident, domain.IncidentStateActive)

	raw := s.reasoners[ai.RoleAnalyzer].Ask(ctx, incident,
		"Analyze this newly created incident and highlight likely causes.")
	evaluated := s.policy.Evaluate(raw)
	if evaluated.Success {
		s.recordHistory(incident.ID, ai.RoleAnalyzer, evaluated.Answer)
		s.setSummary(incident.ID, evaluated.Answer)
		s.logTimeline(incident.ID, "analysis", "Initial analysis recorded")
	} else {
		log.Printf("Initial analysis for incident %d not accepted: %s", incident.ID, evaluated.Message)
	}

	return domain.TriggerResult{
		Result:     domain.Result{Success: true, Message: fmt.Sprintf("Incident %d created", incident.ID)},
		IncidentID: incident.ID,
	}
}

// Attach binds the session to an existing incident and seeds a
// placeholder rolling summary when none exists yet.
func (s *LifecycleService) Attach(incidentID int) domain.AttachResult {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	incident, err := s.incidents.Load(incidentID)
	if err != nil {
		return domain.AttachResult{Result: domain.Result{Success: false, Message: err.Error()}}
	}
	if incident == nil {
		return domain.AttachResult{Result: domain.Result{Success: false, Message: domain.ErrNotFound.Error()}}
	}

	if err := s.session.Save(incident.ID); err != nil {
		return domain.AttachResult{Result: domain.Result{Success: false, Message: err.Error()}}
	}
	s.logTimeline(incident.ID, "attached", fmt.Sprintf("Session attached to incident %d", incident.ID))

	if _, ok, _ := s.history.GetSummary(incident.ID); !ok {
		s.setSummary(incident.ID, placeholderSummary)
	}

	return domain.AttachResult{
		Result:     domain.Result{Success: true, Message: fmt.Sprintf("Attached to incident %d", incident.ID)},
		IncidentID: incident.ID,
	}
}

// Detach clears the session pointer.
func (s *LifecycleService) Detach() domain.Result {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	incidentID, ok := s.session.Load()
	if !ok {
		return domain.Result{Success: false, Message: domain.MsgNoIncidentAttached}
	}

	if err := s.session.Clear(); err != nil {
		return domain.Result{Success: false, Message: err.Error()}
	}
	s.logTimeline(incidentID, "detached", fmt.Sprintf("Session detached from incident %d", incidentID))

	return domain.Result{Success: true, Message: "Detached successfully"}
}

// Ask runs the investigator over the attached incident and, when the
// underlying call succeeds, refreshes the rolling summary through the
// summarizer. The returned result is the policy-evaluated investigator
// response.
func (s *LifecycleService) Ask(ctx context.Context, question string) domain.AskResult {
	incidentID, ok := s.session.Load()
	if !ok {
		return domain.FailedAsk(domain.MsgNoIncidentAttached)
	}

	unlock := s.lockIncident(incidentID)
	defer unlock()

	incident, err := s.incidents.Load(incidentID)
	if err != nil {
		return domain.FailedAsk(err.Error())
	}
	if incident == nil {
		return domain.FailedAsk(domain.ErrNotFound.Error())
	}

	// Best-effort nudge into INVESTIGATING; not a precondition.
	if incident.State == domain.IncidentStateActive {
		s.nudge(incident, domain.IncidentStateInvestigating)
	}

	s.logTimeline(incident.ID, "ask", question)

	raw := s.reasoners[ai.RoleInvestigator].Ask(ctx, incident, question)
	evaluated := s.policy.Evaluate(raw)
	if evaluated.Success {
		s.recordHistory(incident.ID, ai.RoleInvestigator, evaluated.Answer)
	}

	// The summary refresh keys off the raw call outcome, not the policy
	// verdict on the answer.
	if raw.Success {
		s.refreshSummary(ctx, incident, raw.Answer)
	}

	return evaluated
}

// Status reports the attached incident's state and rolling summary.
func (s *LifecycleService) Status() domain.StatusResult {
	incidentID, ok := s.session.Load()
	if !ok {
		return domain.StatusResult{Result: domain.Result{Success: false, Message: domain.MsgNoIncidentAttached}}
	}

	incident, err := s.incidents.Load(incidentID)
	if err != nil {
		return domain.StatusResult{Result: domain.Result{Success: false, Message: err.Error()}}
	}
	if incident == nil {
		return domain.StatusResult{Result: domain.Result{Success: false, Message: domain.ErrNotFound.Error()}}
	}

	summary, ok, _ := s.history.GetSummary(incident.ID)
	if !ok {
		summary = placeholderSummary
	}

	return domain.StatusResult{
		Result:  domain.Result{Success: true},
		State:   string(incident.State),
		Summary: summary,
	}
}

// Resolve transitions the attached incident to RESOLVED. The
// transition is the primary purpose of the operation, so an illegal
// edge is a hard failure and the session stays attached. On success the
// resolver produces closure reasoning and the session is detached
// regardless of the resolver outcome.
func (s *LifecycleService) Resolve(ctx context.Context) domain.Result {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	incidentID, ok := s.session.Load()
	if !ok {
		return domain.Result{Success: false, Message: domain.MsgNoIncidentAttached}
	}

	unlock := s.lockIncident(incidentID)
	defer unlock()

	incident, err := s.incidents.Load(incidentID)
	if err != nil {
		return domain.Result{Success: false, Message: err.Error()}
	}
	if incident == nil {
		return domain.Result{Success: false, Message: domain.ErrNotFound.Error()}
	}

	previous := incident.State
	if err := domain.Transition(incident, domain.IncidentStateResolved); err != nil {
		return domain.Result{Success: false, Message: err.Error()}
	}
	if err := s.incidents.Save(incident); err != nil {
		return domain.Result{Success: false, Message: err.Error()}
	}

	summary, _, _ := s.history.GetSummary(incident.ID)
	raw := s.reasoners[ai.RoleResolver].Ask(ctx, incident,
		"Provide closure and root cause for this incident.\n\nRolling summary:\n"+summary)
	evaluated := s.policy.Evaluate(raw)
	if evaluated.Success {
		s.recordHistory(incident.ID, ai.RoleResolver, evaluated.Answer)
		s.setSummary(incident.ID, evaluated.Answer)
	} else {
		log.Printf("Resolution reasoning for incident %d not accepted: %s", incident.ID, evaluated.Message)
	}

	s.logTimeline(incident.ID, "state_change", fmt.Sprintf("State changed from %s to %s", previous, incident.State))

	// The transition already succeeded; the session ends here no matter
	// what the resolver said.
	if err := s.session.Clear(); err != nil {
		log.Printf("Failed to clear session after resolving incident %d: %v", incident.ID, err)
	}

	return domain.Result{Success: true, Message: fmt.Sprintf("Incident %d resolved successfully", incident.ID)}
}

// List returns all incidents ordered by id.
func (s *LifecycleService) List() ([]*domain.Incident, error) {
	return s.incidents.List()
}

// Get returns a single incident and its rolling summary, or nil when
// the id is unknown.
func (s *LifecycleService) Get(incidentID int) (*domain.Incident, string, error) {
	incident, err := s.incidents.Load(incidentID)
	if err != nil || incident == nil {
		return incident, "", err
	}
	summary, _, _ := s.history.GetSummary(incidentID)
	return incident, summary, nil
}

// Timeline returns the incident's audit trail in append order.
func (s *LifecycleService) Timeline(incidentID int) ([]database.TimelineEvent, error) {
	return s.timeline.Load(incidentID)
}

// History returns the incident's reasoning transcript in append order.
func (s *LifecycleService) History(incidentID int) ([]database.HistoryEntry, error) {
	return s.history.Load(incidentID)
}

// nudge attempts an opportunistic transition, persisting and logging it
// on success. A failed nudge never fails the caller; it is logged so
// state-machine misuse stays observable.
func (s *LifecycleService) nudge(incident *domain.Incident, target domain.IncidentState) {
	previous := incident.State
	if err := domain.Transition(incident, target); err != nil {
		log.Printf("Skipped transition for incident %d: %v", incident.ID, err)
		return
	}
	if err := s.incidents.Save(incident); err != nil {
		log.Printf("Failed to persist transition for incident %d: %v", incident.ID, err)
		return
	}
	s.logTimeline(incident.ID, "state_change", fmt.Sprintf("State changed from %s to %s", previous, target))
}

// refreshSummary runs the summarizer over the latest answer plus the
// previous rolling summary and overwrites the summary on acceptance.
func (s *LifecycleService) refreshSummary(ctx context.Context, incident *domain.Incident, latestAnswer string) {
	previous, _, _ := s.history.GetSummary(incident.ID)
	prompt := fmt.Sprintf("Previous summary:\n%s\n\nLatest finding:\n%s", previous, latestAnswer)

	raw := s.reasoners[ai.RoleSummarizer].Ask(ctx, incident, prompt)
	evaluated := s.policy.Evaluate(raw)
	if !evaluated.Success {
		log.Printf("Summary refresh for incident %d not accepted: %s", incident.ID, evaluated.Message)
		return
	}

	s.setSummary(incident.ID, evaluated.Answer)
	s.logTimeline(incident.ID, "summary", "Rolling summary updated")
}

func (s *LifecycleService) logTimeline(incidentID int, eventType, message string) {
	if err := s.timeline.Append(incidentID, eventType, message); err != nil {
		log.Printf("Failed to log %s event for incident %d: %v", eventType, incidentID, err)
	}
}

func (s *LifecycleService) recordHistory(incidentID int, role ai.Role, content string) {
	if err := s.history.Append(incidentID, string(role), content); err != nil {
		log.Printf("Failed to record %s history for incident %d: %v", role, incidentID, err)
	}
}

func (s *LifecycleService) setSummary(incidentID int, summary string) {
	if err := s.history.SetSummary(incidentID, summary); err != nil {
		log.Printf("Failed to set summary for incident %d: %v", incidentID, err)
	}
}
