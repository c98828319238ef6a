// Package chat answers visitor questions about the portfolio.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/axion/internal/completion"
	"github.com/MikeSquared-Agency/axion/internal/prompt"
)

const FallbackReply = "Sorry, something went wrong while generating the response."

// Cache stores provider replies keyed by the visitor's message.
type Cache interface {
	Get(ctx context.Context, message string) (string, bool, error)
	Set(ctx context.Context, message, reply string) error
}

type Service struct {
	runner    *completion.Runner
	providers []string
	profile   *prompt.Profile
	cache     Cache
	logger    *slog.Logger
}

// NewService builds a chat service. cache may be nil.
func NewService(client completion.Completer, providers []string, profile *prompt.Profile, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		runner:    completion.NewRunner(client, FallbackReply, logger.With("flow", "chat")),
		providers: providers,
		profile:   profile,
		cache:     cache,
		logger:    logger,
	}
}

// Reply always returns text: a cached or generated answer, or the fallback.
func (s *Service) Reply(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "Please ask me something about " + s.profile.OwnerName() + "'s skills, projects, or achievements."
	}

	if s.cache != nil {
		reply, ok, err := s.cache.Get(ctx, message)
		if err != nil {
			s.logger.Warn("chat cache lookup failed", "error", err)
		}
		if ok {
			s.logger.Debug("chat cache hit")
			return reply
		}
	}

	reply, provider := s.runner.Run(ctx, s.providers, prompt.BuildChatPrompt(s.profile, message))
	if provider == "" {
		return reply
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, message, reply); err != nil {
			s.logger.Warn("chat cache store failed", "error", err)
		}
	}
	return reply
}
