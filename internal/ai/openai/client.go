// Package openai implements ai.Provider against an OpenAI-compatible chat
// completions endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

type Client struct {
	apiKey     string
	endpoint   string
	model      string
	timeout    time.Duration
	maxRetries int
	httpClient httpDoer
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("model is required")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("timeout must be > 0")
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		endpoint:   normalizeEndpoint(cfg.BaseURL),
		model:      strings.TrimSpace(cfg.Model),
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{},
	}, nil
}

// Generate sends one user prompt and returns the model's text output.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := c.callCompletions(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}

	text := body.text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty model output")
	}
	return text, nil
}

func normalizeEndpoint(base string) string {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return defaultEndpoint
	}

	trimmed = strings.TrimRight(trimmed, "/")
	switch {
	case strings.HasSuffix(trimmed, "/chat/completions"):
		return trimmed
	case strings.HasSuffix(trimmed, "/v1"):
		return trimmed + "/chat/completions"
	default:
		return fmt.Sprintf("%s/v1/chat/completions", trimmed)
	}
}
