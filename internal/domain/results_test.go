package domain

import "testing"

func TestNewAskResult(t *testing.T) {
	tests := []struct {
		name       string
		confidence *float64
		wantErr    bool
	}{
		{"nil confidence", nil, false},
		{"zero confidence", Confidence(0.0), false},
		{"full confidence", Confidence(1.0), false},
		{"mid confidence", Confidence(0.65), false},
		{"negative confidence", Confidence(-0.1), true},
		{"confidence above one", Confidence(1.5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewAskResult("answer", tt.confidence, "reasoning")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAskResult error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !result.Success {
				t.Error("expected successful result")
			}
		})
	}
}

func TestFailedAsk(t *testing.T) {
	result := FailedAsk("something went wrong")
	if result.Success {
		t.Error("expected failure result")
	}
	if result.Message != "something went wrong" {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if result.Confidence != nil {
		t.Error("expected nil confidence on failure")
	}
}
