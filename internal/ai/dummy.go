package ai

import (
	"context"
	"fmt"

	"github.com/opsverdict/opsverdict/internal/domain"
)

// DummyReasoner is a static backend for local development and tests.
type DummyReasoner struct {
	role Role
}

// NewDummyReasoner creates a dummy reasoner for the given role.
func NewDummyReasoner(role Role) *DummyReasoner {
	return &DummyReasoner{role: role}
}

// Ask returns a canned high-confidence response.
func (r *DummyReasoner) Ask(_ context.Context, incident *domain.Incident, _ string) domain.AskResult {
	result, err := domain.NewAskResult(
		fmt.Sprintf("Dummy %s response for incident %d", r.role, incident.ID),
		domain.Confidence(0.9),
		"Static dummy reasoning",
	)
	if err != nil {
		return domain.FailedAsk(err.Error())
	}
	return result
}
