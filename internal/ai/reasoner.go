// Package ai defines the reasoning port: ask a question about an
// incident, get back an answer with a confidence score. Backends are
// swappable; prompt construction, including role instructions, lives
// inside each implementation.
package ai

import (
	"context"

	"github.com/opsverdict/opsverdict/internal/domain"
)

// Reasoner produces a reasoning response for an incident. It must not
// contain policy, validation, or enforcement logic: every result goes
// through ReasoningPolicy before it is trusted. Failures are reported
// as a failed AskResult, never as a Go error.
type Reasoner interface {
	Ask(ctx context.Context, incident *domain.Incident, question string) domain.AskResult
}
