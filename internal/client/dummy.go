package client

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/opsverdict/opsverdict/internal/domain"
)

// DummyClient is an in-memory fake for offline CLI development. It
// seeds two incidents and honors the attach/detach lifecycle without
// touching disk or the network.
type DummyClient struct {
	incidents map[int]*domain.Incident
	attached  int
}

// NewDummyClient creates a dummy client with seeded incidents.
func NewDummyClient() *DummyClient {
	now := time.Now().UTC()
	return &DummyClient{
		incidents: map[int]*domain.Incident{
			1: {ID: 1, Title: "Dummy Incident 1", State: domain.IncidentStateActive, CreatedAt: now, UpdatedAt: now},
			2: {ID: 2, Title: "Dummy Incident 2", State: domain.IncidentStateResolved, CreatedAt: now, UpdatedAt: now},
		},
	}
}

func (c *DummyClient) ListIncidents() ([]*domain.Incident, error) {
	ids := make([]int, 0, len(c.incidents))
	for id := range c.incidents {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	incidents := make([]*domain.Incident, 0, len(ids))
	for _, id := range ids {
		incidents = append(incidents, c.incidents[id])
	}
	return incidents, nil
}

func (c *DummyClient) Trigger(_ context.Context) domain.TriggerResult {
	maxID := 0
	for id := range c.incidents {
		if id > maxID {
			maxID = id
		}
	}
	id := maxID + 1

	now := time.Now().UTC()
	c.incidents[id] = &domain.Incident{
		ID:        id,
		Title:     fmt.Sprintf("Dummy Incident %d", id),
		State:     domain.IncidentStateActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return domain.TriggerResult{Result: domain.Result{Success: true}, IncidentID: id}
}

func (c *DummyClient) Attach(incidentID int) domain.AttachResult {
	if _, ok := c.incidents[incidentID]; !ok {
		return domain.AttachResult{Result: domain.Result{Success: false, Message: domain.ErrNotFound.Error()}}
	}
	c.attached = incidentID
	return domain.AttachResult{Result: domain.Result{Success: true}, IncidentID: incidentID}
}

func (c *DummyClient) Detach() domain.Result {
	if c.attached == 0 {
		return domain.Result{Success: false, Message: domain.MsgNoIncidentAttached}
	}
	c.attached = 0
	return domain.Result{Success: true, Message: "Detached successfully"}
}

func (c *DummyClient) Ask(_ context.Context, _ string) domain.AskResult {
	if c.attached == 0 {
		return domain.FailedAsk(domain.MsgNoIncidentAttached)
	}
	result, _ := domain.NewAskResult("This is a dummy answer.", domain.Confidence(0.9), "Dummy reasoning trace.")
	return result
}

func (c *DummyClient) Status() domain.StatusResult {
	if c.attached == 0 {
		return domain.StatusResult{Result: domain.Result{Success: false, Message: domain.MsgNoIncidentAttached}}
	}
	incident := c.incidents[c.attached]
	return domain.StatusResult{
		Result:  domain.Result{Success: true},
		State:   string(incident.State),
		Summary: fmt.Sprintf("%s is %s", incident.Title, incident.State),
	}
}

func (c *DummyClient) Resolve(_ context.Context) domain.Result {
	if c.attached == 0 {
		return domain.Result{Success: false, Message: domain.MsgNoIncidentAttached}
	}
	incident := c.incidents[c.attached]
	incident.State = domain.IncidentStateResolved
	incident.UpdatedAt = time.Now().UTC()
	c.attached = 0
	return domain.Result{Success: true, Message: fmt.Sprintf("Incident %d resolved successfully", incident.ID)}
}
