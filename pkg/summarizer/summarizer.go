// Package summarizer calls an OpenAI-compatible chat-completions endpoint.
// One POST per run, no retry, no streaming, no client-side timeout.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	// Model is the fixed model identifier sent with every request.
	Model = "gpt-3.5-turbo"
	// Temperature is the fixed sampling temperature sent with every request.
	Temperature = 0.7

	maxBodySnippet = 2048
)

// Doer executes a single HTTP request. Satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Completion is the outcome of a 200 response. Content is empty when the
// response carried no message content; RawBody keeps a snippet of the body
// so diagnostics can show what the endpoint actually returned.
type Completion struct {
	Content string
	RawBody string
}

type Client struct {
	endpoint string
	apiKey   string
	doer     Doer
}

// NewClient builds a client for the given endpoint. A nil doer falls back to
// a plain http.Client with no configured timeout.
func NewClient(endpoint, apiKey string, doer Doer) *Client {
	if doer == nil {
		doer = &http.Client{}
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		doer:     doer,
	}
}

// Summarize posts the prompt and returns the first choice's message content.
// A 200 response with a missing content path is not an error here; the
// caller treats the empty completion as failure.
func (c *Client) Summarize(ctx context.Context, prompt string) (Completion, error) {
	payload := chatRequest{
		Model:       Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: Temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Completion{}, fmt.Errorf("summary request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Completion{}, fmt.Errorf("summary request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return Completion{}, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, fmt.Errorf("summary request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Completion{}, fmt.Errorf("summary endpoint returned status %d: %s", resp.StatusCode, snippet(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Completion{RawBody: snippet(raw)}, nil
	}
	if len(parsed.Choices) == 0 {
		return Completion{RawBody: snippet(raw)}, nil
	}

	return Completion{
		Content: parsed.Choices[0].Message.Content,
		RawBody: snippet(raw),
	}, nil
}

func snippet(b []byte) string {
	if len(b) > maxBodySnippet {
		b = b[:maxBodySnippet]
	}
	return string(b)
}
