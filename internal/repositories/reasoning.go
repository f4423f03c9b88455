package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"clothing-advisor/config"
	"clothing-advisor/pkg/observe"
)

// ReasoningClient abstracts the escalation LLM. Implementations get exactly
// one attempt per request; the delegated strategy owns the fallback.
type ReasoningClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIReasoningClient speaks an OpenAI-compatible chat completions API.
type OpenAIReasoningClient struct {
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  HTTPClient
	l           *observe.Logger
}

func NewOpenAIReasoningClient(cfg config.ReasoningConfig, l *observe.Logger, httpClient HTTPClient) *OpenAIReasoningClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.TimeoutDuration()}
	}
	return &OpenAIReasoningClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  httpClient,
		l:           l,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *OpenAIReasoningClient) Complete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "build chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.l.Debug("making reasoning request", map[string]any{"model": c.model})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call reasoning service")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read reasoning response")
	}

	if resp.StatusCode != http.StatusOK {
		c.l.Warning("reasoning service returned non-200", map[string]any{
			"status": resp.StatusCode,
			"model":  c.model,
		})
		return "", fmt.Errorf("reasoning service status %d: %s", resp.StatusCode, resp.Status)
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		c.l.Warning("reasoning response is not valid JSON", map[string]any{"model": c.model})
		return "", errors.Wrap(err, "parse reasoning response")
	}

	if len(response.Choices) == 0 {
		return "", errors.New("reasoning response has no choices")
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("reasoning response is empty")
	}

	return content, nil
}
