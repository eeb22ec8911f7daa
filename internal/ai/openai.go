package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opsverdict/opsverdict/internal/domain"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIReasoner answers questions through the OpenAI chat completions
// API. The model cannot score its own output, so responses carry a
// fixed confidence of 1.0.
type OpenAIReasoner struct {
	apiKey      string
	model       string
	role        Role
	instruction string
	httpClient  *http.Client
}

// NewOpenAIReasoner creates an OpenAI-backed reasoner for the given
// role. Construction fails fast when the API key is missing.
func NewOpenAIReasoner(apiKey, model string, role Role, instruction string) (*OpenAIReasoner, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIReasoner{
		apiKey:      apiKey,
		model:       model,
		role:        role,
		instruction: instruction,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Ask builds the role prompt, sends it to OpenAI, and returns the raw
// answer. Transport and API errors become failed results.
func (r *OpenAIReasoner) Ask(ctx context.Context, incident *domain.Incident, question string) domain.AskResult {
	prompt := BuildPrompt(r.role, r.instruction, incident, question)

	body, err := json.Marshal(openAIRequest{
		Model: r.model,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return domain.FailedAsk(fmt.Sprintf("failed to marshal request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewBuffer(body))
	if err != nil {
		return domain.FailedAsk(fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return domain.FailedAsk(fmt.Sprintf("OpenAI request failed: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FailedAsk(fmt.Sprintf("failed to read OpenAI response: %v", err))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return domain.FailedAsk(fmt.Sprintf("failed to parse OpenAI response: %v", err))
	}
	if parsed.Error != nil {
		return domain.FailedAsk(fmt.Sprintf("OpenAI API error: %s", parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return domain.FailedAsk("no choices in OpenAI response")
	}

	answer := strings.TrimSpace(parsed.Choices[0].Message.Content)
	result, err := domain.NewAskResult(answer, domain.Confidence(1.0), "")
	if err != nil {
		return domain.FailedAsk(err.Error())
	}
	return result
}
