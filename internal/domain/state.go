package domain

import "time"

// allowedTransitions is the directed edge set of the incident lifecycle.
// ARCHIVED is terminal.
var allowedTransitions = map[IncidentState][]IncidentState{
	IncidentStateCreated:       {IncidentStateActive},
	IncidentStateActive:        {IncidentStateInvestigating, IncidentStateResolved},
	IncidentStateInvestigating: {IncidentStateResolved},
	IncidentStateResolved:      {IncidentStateArchived},
	IncidentStateArchived:      {},
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to IncidentState) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves the incident to the target state and refreshes
// UpdatedAt. On an illegal edge it returns IllegalTransitionError and
// leaves the incident untouched. Persistence and timeline logging are
// the caller's responsibility.
func Transition(incident *Incident, target IncidentState) error {
	if !CanTransition(incident.State, target) {
		return &IllegalTransitionError{From: incident.State, To: target}
	}

	incident.State = target
	incident.UpdatedAt = time.Now().UTC()
	return nil
}
