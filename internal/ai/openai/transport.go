package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

const maxResponseBodyBytes = 8 * 1024 * 1024

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []chatMsg `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionBody struct {
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error"`
}

type choice struct {
	Message chatMsg `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (b completionBody) text() string {
	if len(b.Choices) == 0 {
		return ""
	}
	return b.Choices[0].Message.Content
}

func (c *Client) callCompletions(ctx context.Context, prompt string, maxTokens int) (completionBody, error) {
	payload, err := json.Marshal(completionRequest{
		Model:     c.model,
		Messages:  []chatMsg{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return completionBody{}, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return completionBody{}, ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		body, retryable, err := c.doRequest(ctx, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return completionBody{}, lastErr
}

func (c *Client) doRequest(ctx context.Context, payload []byte) (completionBody, bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return completionBody{}, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network-level failures are worth one more try.
		return completionBody{}, true, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return completionBody{}, true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return completionBody{}, retryable, apiStatusError(resp.StatusCode, raw)
	}

	var body completionBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return completionBody{}, false, fmt.Errorf("decode response: %w", err)
	}
	if body.Error != nil {
		return completionBody{}, false, fmt.Errorf("api error: %s", body.Error.Message)
	}

	return body, false, nil
}

func apiStatusError(status int, raw []byte) error {
	var body completionBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != nil {
		return fmt.Errorf("http %d: %s", status, body.Error.Message)
	}
	return fmt.Errorf("http %d", status)
}

func backoff(attempt int) time.Duration {
	d := time.Duration(attempt) * 500 * time.Millisecond
	if d > 2*time.Second {
		d = 2 * time.Second
	}
	return d
}
