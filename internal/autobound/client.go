// Package autobound triggers LinkedIn connection requests through the
// Autobound content API.
package autobound

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/axion/internal/outreach"
)

const defaultGenerateURL = "https://api.autobound.ai/api/external/generate-content/v1"

type Client struct {
	apiKey    string
	userEmail string
	client    *http.Client
	apiURL    string
}

// NewClient sends requests as userEmail, the owner's address.
func NewClient(apiKey, userEmail string) *Client {
	return &Client{
		apiKey:    apiKey,
		userEmail: userEmail,
		client:    &http.Client{Timeout: 10 * time.Second},
		apiURL:    defaultGenerateURL,
	}
}

// Connect asks Autobound for a connection request to the contact. Without an
// email the contact is addressed by a synthetic one derived from the name.
func (c *Client) Connect(ctx context.Context, name, email string) outreach.ActionResult {
	if c.apiKey == "" {
		return outreach.Failed("autobound: api key not configured")
	}
	contact := strings.TrimSpace(email)
	if contact == "" {
		contact = strings.ReplaceAll(strings.ToLower(name), " ", "") + "@example.com"
	}

	payload, err := json.Marshal(map[string]string{
		"contactEmail": contact,
		"userEmail":    c.userEmail,
		"contentType":  "connectionRequest",
	})
	if err != nil {
		return outreach.Failed("autobound: marshal: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return outreach.Failed("autobound: create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return outreach.Failed("autobound: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return outreach.Failed("autobound: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return outreach.Succeeded()
}
