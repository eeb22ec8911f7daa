package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/opsverdict/opsverdict/internal/domain"
)

// GeminiReasoner answers questions through Google's Gemini API. The
// SDK exposes no native probability score, so responses carry a fixed
// confidence of 1.0.
type GeminiReasoner struct {
	client      *genai.Client
	model       string
	role        Role
	instruction string
}

// NewGeminiReasoner creates a Gemini-backed reasoner for the given
// role. Construction fails fast when the API key is missing.
func NewGeminiReasoner(apiKey, model string, role Role, instruction string) (*GeminiReasoner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiReasoner{
		client:      client,
		model:       model,
		role:        role,
		instruction: instruction,
	}, nil
}

// Ask builds the role prompt, sends it to Gemini, and returns the raw
// answer. Upstream errors become failed results.
func (r *GeminiReasoner) Ask(ctx context.Context, incident *domain.Incident, question string) domain.AskResult {
	prompt := BuildPrompt(r.role, r.instruction, incident, question)

	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), nil)
	if err != nil {
		return domain.FailedAsk(fmt.Sprintf("Gemini request failed: %v", err))
	}

	answer := strings.TrimSpace(resp.Text())
	result, err := domain.NewAskResult(answer, domain.Confidence(1.0), "")
	if err != nil {
		return domain.FailedAsk(err.Error())
	}
	return result
}
