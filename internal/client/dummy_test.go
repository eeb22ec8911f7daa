package client

import (
	"context"
	"testing"

	"github.com/opsverdict/opsverdict/internal/domain"
)

func TestDummyClient_SeededIncidents(t *testing.T) {
	c := NewDummyClient()

	incidents, err := c.ListIncidents()
	if err != nil {
		t.Fatal(err)
	}
	if len(incidents) != 2 {
		t.Fatalf("expected 2 seeded incidents, got %d", len(incidents))
	}
	if incidents[0].ID != 1 || incidents[0].State != domain.IncidentStateActive {
		t.Errorf("unexpected first incident: %+v", incidents[0])
	}
	if incidents[1].ID != 2 || incidents[1].State != domain.IncidentStateResolved {
		t.Errorf("unexpected second incident: %+v", incidents[1])
	}
}

func TestDummyClient_TriggerAllocatesNextID(t *testing.T) {
	c := NewDummyClient()

	result := c.Trigger(context.Background())

	if !result.Success || result.IncidentID != 3 {
		t.Errorf("unexpected trigger result: %+v", result)
	}
	incidents, _ := c.ListIncidents()
	if len(incidents) != 3 {
		t.Errorf("new incident not listed")
	}
}

func TestDummyClient_SessionOperationsRequireAttach(t *testing.T) {
	c := NewDummyClient()

	if r := c.Ask(context.Background(), "q"); r.Success {
		t.Error("ask without attach should fail")
	}
	if r := c.Status(); r.Success {
		t.Error("status without attach should fail")
	}
	if r := c.Resolve(context.Background()); r.Success {
		t.Error("resolve without attach should fail")
	}
	if r := c.Detach(); r.Success {
		t.Error("detach without attach should fail")
	}
}

func TestDummyClient_AttachAskResolve(t *testing.T) {
	c := NewDummyClient()

	if r := c.Attach(42); r.Success {
		t.Error("attach to unknown incident should fail")
	}

	if r := c.Attach(1); !r.Success || r.IncidentID != 1 {
		t.Fatalf("attach failed: %+v", r)
	}
	if r := c.Ask(context.Background(), "what happened?"); !r.Success || r.Answer == "" {
		t.Errorf("unexpected ask result: %+v", r)
	}
	if r := c.Status(); !r.Success || r.State != "active" {
		t.Errorf("unexpected status: %+v", r)
	}

	if r := c.Resolve(context.Background()); !r.Success {
		t.Fatalf("resolve failed: %+v", r)
	}
	incidents, _ := c.ListIncidents()
	if incidents[0].State != domain.IncidentStateResolved {
		t.Error("incident not marked resolved")
	}
	if r := c.Status(); r.Success {
		t.Error("session should be detached after resolve")
	}
}
