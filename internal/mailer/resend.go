// Package mailer delivers single emails through Resend.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

type Resend struct {
	client *resend.Client
	sender string
	logger *slog.Logger
}

func NewResend(apiKey, sender string, logger *slog.Logger) *Resend {
	return &Resend{
		client: resend.NewCustomClient(&http.Client{Timeout: 10 * time.Second}, apiKey),
		sender: sender,
		logger: logger,
	}
}

// Send delivers one message. The plain-text body is escaped and its line
// breaks rendered as <br>.
func (r *Resend) Send(ctx context.Context, to, subject, body string) error {
	if r.client.ApiKey == "" {
		return errors.New("resend: api key not configured")
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("resend: empty recipient")
	}

	sent, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.sender,
		To:      []string{to},
		Subject: subject,
		Html:    renderHTML(body),
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	r.logger.Info("email sent", "to", to, "id", sent.Id)
	return nil
}

func renderHTML(body string) string {
	return "<p>" + strings.ReplaceAll(html.EscapeString(body), "\n", "<br>") + "</p>"
}
