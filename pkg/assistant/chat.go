package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Completer turns a system and user prompt into a reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ChatClient talks to an OpenAI compatible chat completions endpoint.
type ChatClient struct {
	URL    string
	APIKey string
	Model  string
	HTTP   *http.Client
}

func NewChatClient(url, apiKey, model string) *ChatClient {
	return &ChatClient{
		URL:    url,
		APIKey: apiKey,
		Model:  model,
		HTTP:   &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var ErrNoAPIKey = errors.New("assistant: no API key configured")

func (c *ChatClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}
	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("assistant: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant: request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("assistant: read response: %w", err)
	}
	var out chatResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("assistant: HTTP error %d: %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("assistant: HTTP error %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("assistant: decode response: %w", decodeErr)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("assistant: response had no choices")
	}
	return out.Choices[0].Message.Content, nil
}
