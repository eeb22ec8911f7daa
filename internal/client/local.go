package client

import (
	"context"

	"github.com/opsverdict/opsverdict/internal/domain"
	"github.com/opsverdict/opsverdict/internal/services"
)

// LocalClient runs lifecycle operations in-process against the local
// data directory.
type LocalClient struct {
	lifecycle *services.LifecycleService
}

// NewLocalClient wraps an orchestrator in the client interface.
func NewLocalClient(lifecycle *services.LifecycleService) *LocalClient {
	return &LocalClient{lifecycle: lifecycle}
}

func (c *LocalClient) ListIncidents() ([]*domain.Incident, error) {
	return c.lifecycle.List()
}

func (c *LocalClient) Trigger(ctx context.Context) domain.TriggerResult {
	return c.lifecycle.Trigger(ctx, "")
}

func (c *LocalClient) Attach(incidentID int) domain.AttachResult {
	return c.lifecycle.Attach(incidentID)
}

func (c *LocalClient) Detach() domain.Result {
	return c.lifecycle.Detach()
}

func (c *LocalClient) Ask(ctx context.Context, question string) domain.AskResult {
	return c.lifecycle.Ask(ctx, question)
}

func (c *LocalClient) Status() domain.StatusResult {
	return c.lifecycle.Status()
}

func (c *LocalClient) Resolve(ctx context.Context) domain.Result {
	return c.lifecycle.Resolve(ctx)
}
