package ai

import (
	"fmt"

	"github.com/opsverdict/opsverdict/internal/domain"
)

// MinConfidence is the threshold below which a reasoning response is
// rejected rather than trusted.
const MinConfidence = 0.6

// ReasoningPolicy is the single gate through which all reasoning output
// must pass before entering the history or summary stores.
type ReasoningPolicy struct{}

// NewReasoningPolicy creates the confidence-gating policy.
func NewReasoningPolicy() *ReasoningPolicy {
	return &ReasoningPolicy{}
}

// Evaluate applies the confidence gate. Failed results pass through
// unchanged. A successful result with no confidence is downgraded to a
// failure; one below the threshold is downgraded but keeps its answer,
// confidence, and reasoning so callers can inspect what was rejected.
// Evaluating an already-accepted result again returns it unchanged.
func (p *ReasoningPolicy) Evaluate(result domain.AskResult) domain.AskResult {
	if !result.Success {
		return result
	}

	if result.Confidence == nil {
		return domain.FailedAsk("AI response missing confidence score")
	}

	if *result.Confidence < MinConfidence {
		rejected := domain.FailedAsk(fmt.Sprintf(
			"AI confidence below acceptable threshold (%.2f)", *result.Confidence))
		rejected.Answer = result.Answer
		rejected.Confidence = result.Confidence
		rejected.Reasoning = result.Reasoning
		return rejected
	}

	return result
}
