package ai

import (
	"strings"
	"testing"

	"github.com/opsverdict/opsverdict/internal/domain"
)

func TestPolicy_FailedResultPassesThrough(t *testing.T) {
	policy := NewReasoningPolicy()
	input := domain.FailedAsk("backend unreachable")

	got := policy.Evaluate(input)

	if got.Success {
		t.Error("expected failure to remain a failure")
	}
	if got.Message != "backend unreachable" {
		t.Errorf("message rewritten: %q", got.Message)
	}
}

func TestPolicy_MissingConfidenceRejected(t *testing.T) {
	policy := NewReasoningPolicy()
	input, err := domain.NewAskResult("an answer", nil, "some reasoning")
	if err != nil {
		t.Fatal(err)
	}

	got := policy.Evaluate(input)

	if got.Success {
		t.Error("expected rejection")
	}
	if got.Message != "AI response missing confidence score" {
		t.Errorf("unexpected message: %q", got.Message)
	}
}

func TestPolicy_LowConfidenceRejectedKeepsFields(t *testing.T) {
	policy := NewReasoningPolicy()
	input, err := domain.NewAskResult("the disk is full", domain.Confidence(0.4), "saw df output")
	if err != nil {
		t.Fatal(err)
	}

	got := policy.Evaluate(input)

	if got.Success {
		t.Error("expected rejection")
	}
	if !strings.Contains(got.Message, "below acceptable threshold (0.40)") {
		t.Errorf("unexpected message: %q", got.Message)
	}
	if got.Answer != "the disk is full" {
		t.Errorf("answer dropped: %q", got.Answer)
	}
	if got.Confidence == nil || *got.Confidence != 0.4 {
		t.Error("confidence dropped")
	}
	if got.Reasoning != "saw df output" {
		t.Errorf("reasoning dropped: %q", got.Reasoning)
	}
}

func TestPolicy_ThresholdBoundaryAccepted(t *testing.T) {
	policy := NewReasoningPolicy()
	input, err := domain.NewAskResult("answer", domain.Confidence(MinConfidence), "")
	if err != nil {
		t.Fatal(err)
	}

	got := policy.Evaluate(input)

	if !got.Success {
		t.Errorf("confidence exactly at threshold should pass, got %q", got.Message)
	}
}

func TestPolicy_EvaluateIsIdempotent(t *testing.T) {
	policy := NewReasoningPolicy()
	input, err := domain.NewAskResult("answer", domain.Confidence(0.95), "reasoning")
	if err != nil {
		t.Fatal(err)
	}

	once := policy.Evaluate(input)
	twice := policy.Evaluate(once)

	if once != twice {
		t.Errorf("re-evaluation changed result: %+v vs %+v", once, twice)
	}
}
