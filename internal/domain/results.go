package domain

import "fmt"

// Result is the base outcome of a lifecycle operation, independent of
// transport (CLI, HTTP).
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// TriggerResult is the outcome of creating a new incident session.
type TriggerResult struct {
	Result
	IncidentID int `json:"incident_id,omitempty"`
}

// AttachResult is the outcome of attaching to an incident session.
type AttachResult struct {
	Result
	IncidentID int `json:"incident_id,omitempty"`
}

// StatusResult reports the current state of the attached session.
type StatusResult struct {
	Result
	State   string `json:"state,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// AskResult is the outcome of an AI reasoning query. Confidence is
// optional; backends that cannot score their output leave it nil.
type AskResult struct {
	Result
	Answer     string   `json:"answer,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Reasoning  string   `json:"reasoning,omitempty"`
}

// NewAskResult builds a successful AskResult, rejecting malformed
// confidence values at construction time.
func NewAskResult(answer string, confidence *float64, reasoning string) (AskResult, error) {
	if confidence != nil && (*confidence < 0.0 || *confidence > 1.0) {
		return AskResult{}, fmt.Errorf("confidence must be between 0.0 and 1.0, got %v", *confidence)
	}
	return AskResult{
		Result:     Result{Success: true},
		Answer:     answer,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, nil
}

// FailedAsk builds a failure AskResult with a human-readable message.
func FailedAsk(message string) AskResult {
	return AskResult{Result: Result{Success: false, Message: message}}
}

// Confidence is a convenience for building optional confidence values.
func Confidence(v float64) *float64 {
	return &v
}
