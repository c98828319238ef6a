package completion

import (
	"context"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/axion/internal/redact"
)

// Runner tries providers in priority order and returns the first usable text.
type Runner struct {
	client   Completer
	fallback string
	logger   *slog.Logger
}

func NewRunner(client Completer, fallback string, logger *slog.Logger) *Runner {
	return &Runner{client: client, fallback: fallback, logger: logger}
}

// Fallback returns the text Run yields when every provider fails.
func (r *Runner) Fallback() string {
	return r.fallback
}

// Run calls each provider once, strictly one after another, stopping at the
// first success. It returns the generated text and the provider that produced
// it, or the fallback text and an empty provider when every attempt failed
// (including when providers is empty).
func (r *Runner) Run(ctx context.Context, providers []string, prompt string) (string, string) {
	for i, provider := range providers {
		start := time.Now()
		res := r.client.Complete(ctx, provider, prompt)
		if res.OK() {
			r.logger.Info("provider attempt succeeded",
				"provider", provider,
				"attempt", i+1,
				"duration", time.Since(start),
				"response_len", len(res.Text),
			)
			return res.Text, provider
		}
		r.logger.Warn("provider attempt failed",
			"provider", provider,
			"attempt", i+1,
			"duration", time.Since(start),
			"error", redact.Error(res.Err),
		)
	}

	r.logger.Error("all providers failed, using fallback", "providers", len(providers))
	return r.fallback, ""
}
