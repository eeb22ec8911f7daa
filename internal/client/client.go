// Package client provides the presentation-facing interface over the
// lifecycle operations, with local, HTTP, and dummy implementations.
package client

import (
	"context"

	"github.com/opsverdict/opsverdict/internal/domain"
)

// Client is the surface consumed by the CLI. Implementations translate
// the calls into lifecycle operations, either in-process or over HTTP.
type Client interface {
	ListIncidents() ([]*domain.Incident, error)
	Trigger(ctx context.Context) domain.TriggerResult
	Attach(incidentID int) domain.AttachResult
	Detach() domain.Result
	Ask(ctx context.Context, question string) domain.AskResult
	Status() domain.StatusResult
	Resolve(ctx context.Context) domain.Result
}
