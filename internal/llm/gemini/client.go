package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"interviewiq-backend/internal/llm"
)

const defaultModel = "gemini-2.0-flash"

// Client implements llm.Client against the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient builds a Gemini-backed client. An empty model falls back to gemini-2.0-flash.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model, timeout: timeout}, nil
}

// Complete sends the prompt and returns the generated text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini generate: nil response")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
