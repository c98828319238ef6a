// Package gemini serves "gemini:" provider IDs through the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/axion/internal/completion"
	"google.golang.org/genai"
)

type Config struct {
	APIKey string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string

	Timeout time.Duration
}

type Client struct {
	client  *genai.Client
	timeout time.Duration
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{client: client, timeout: timeout}, nil
}

// Complete generates a single candidate for prompt with model.
func (c *Client) Complete(ctx context.Context, model, prompt string) completion.Result {
	if strings.TrimSpace(prompt) == "" {
		return completion.Failure(errors.New("empty prompt"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		CandidateCount: 1,
	})
	if err != nil {
		return completion.Failure(describe(err))
	}

	text, err := textFrom(resp)
	if err != nil {
		return completion.Failure(err)
	}
	return completion.Success(text)
}

func textFrom(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", errors.New("no candidates returned")
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty candidate text")
	}
	return text, nil
}

func describe(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini api error %d: %s", apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("gemini call: %w", err)
}
