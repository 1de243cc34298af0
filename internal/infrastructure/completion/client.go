package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	usecase "storyhub/backend/internal/usecase/story"
)

// Client calls the story completion provider over HTTP. The provider is an
// external collaborator; only the narrow Complete operation is consumed.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	httpc   *http.Client
}

// Config captures the provider connection settings.
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// NewClient constructs a provider client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements the Completer interface.
var _ usecase.Completer = (*Client)(nil)

// Complete posts the prompt to the provider and returns the generated text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload := struct {
		Model  string `json:"model,omitempty"`
		Prompt string `json:"prompt"`
	}{
		Model:  c.model,
		Prompt: prompt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for the error message, never all of it.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion provider: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out struct {
		Text    string `json:"text"`
		Choices []struct {
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("completion provider: decoding response: %w", err)
	}

	if out.Text != "" {
		return out.Text, nil
	}
	if len(out.Choices) > 0 && out.Choices[0].Text != "" {
		return out.Choices[0].Text, nil
	}
	return "", errors.New("completion provider: empty response")
}
