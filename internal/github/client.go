// Package github follows users on behalf of the portfolio owner.
package github

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/MikeSquared-Agency/axion/internal/outreach"
)

type Client struct {
	httpClient *http.Client
	gh         *gogithub.Client
}

// NewClient authenticates with a personal access token. An empty token
// yields a client whose calls fail without touching the network.
func NewClient(token string) *Client {
	if token == "" {
		return &Client{}
	}
	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	httpClient.Timeout = 5 * time.Second
	return &Client{httpClient: httpClient, gh: gogithub.NewClient(httpClient)}
}

// Follow issues PUT /user/following/{username}. GitHub answers 204 on a new
// follow and 304 when already following.
func (c *Client) Follow(ctx context.Context, username string) outreach.ActionResult {
	username = strings.TrimSpace(username)
	if username == "" {
		return outreach.Failed("github: empty username")
	}
	if c.gh == nil {
		return outreach.Failed("github: credentials not configured")
	}

	resp, err := c.gh.Users.Follow(ctx, username)
	if resp != nil && resp.StatusCode == http.StatusNotModified {
		return outreach.Succeeded()
	}
	if err != nil {
		var apiErr *gogithub.ErrorResponse
		if errors.As(err, &apiErr) && apiErr.Response != nil {
			return outreach.Failed("github: follow %s: status %d: %s", username, apiErr.Response.StatusCode, apiErr.Message)
		}
		return outreach.Failed("github: follow %s: %v", username, err)
	}
	return outreach.Succeeded()
}
