package client

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

// HTTPClient talks to a remote control plane over its REST façade.
// Requests authenticate with an X-API-Key header.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a REST client for the given control plane.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("unauthorized: check OPSVERDICT_API_KEY")
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if resp.StatusCode >= 400 && !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return fmt.Errorf("request rejected (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) ListIncidents() ([]*domain.Incident, error) {
	var incidents []*domain.Incident
	if err := c.do(context.Background(), http.MethodGet, "/api/incidents", nil, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

func (c *HTTPClient) Trigger(ctx context.Context) domain.TriggerResult {
	var result domain.TriggerResult
	if err := c.do(ctx, http.MethodPost, "/api/incidents", map[string]string{}, &result); err != nil {
		return domain.TriggerResult{Result: domain.Result{Success: false, Message: err.Error()}}
	}
	return result
}

func (c *HTTPClient) Attach(incidentID int) domain.AttachResult {
	var result domain.AttachResult
	body := map[string]int{"incident_id": incidentID}
	if err := c.do(context.Background(), http.MethodPost, "/api/session/attach", body, &result); err != nil {
		return domain.AttachResult{Result: domain.Result{Success: false, Message: err.Error()}}
	}
	return result
}

func (c *HTTPClient) Detach() domain.Result {
	var result domain.Result
	if err := c.do(context.Background(), http.MethodPost, "/api/session/detach", map[string]string{}, &result); err != nil {
		return domain.Result{Success: false, Message: err.Error()}
	}
	return result
}

func (c *HTTPClient) Ask(ctx context.Context, question string) domain.AskResult {
	var result domain.AskResult
	body := map[string]string{"question": question}
	if err := c.do(ctx, http.MethodPost, "/api/session/ask", body, &result); err != nil {
		return domain.FailedAsk(err.Error())
	}
	return result
}

func (c *HTTPClient) Status() domain.StatusResult {
	var result domain.StatusResult
	if err := c.do(context.Background(), http.MethodGet, "/api/session", nil, &result); err != nil {
		return domain.StatusResult{Result: domain.Result{Success: false, Message: err.Error()}}
	}
	return result
}

func (c *HTTPClient) Resolve(ctx context.Context) domain.Result {
	var result domain.Result
	if err := c.do(ctx, http.MethodPost, "/api/session/resolve", map[string]string{}, &result); err != nil {
		return domain.Result{Success: false, Message: err.Error()}
	}
	return result
}
