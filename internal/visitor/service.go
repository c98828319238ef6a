// Package visitor logs portfolio submissions and emails recruiters a
// generated introduction.
package visitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/axion/internal/hermes"
	"github.com/MikeSquared-Agency/axion/internal/outreach"
	"github.com/MikeSquared-Agency/axion/internal/prompt"
	"github.com/MikeSquared-Agency/axion/internal/redact"
	"github.com/MikeSquared-Agency/axion/internal/store"
)

const UserTypeHR = "hr"

// Submission is one visitor form post. Answers doubles as the role
// description when IsHiring is set.
type Submission struct {
	Name     string
	Email    string
	UserType string
	Company  string
	Role     string
	Answers  string
	IsHiring bool
}

type Drafter interface {
	Draft(ctx context.Context, req prompt.OutreachRequest) outreach.Draft
}

type Publisher interface {
	Publish(subject string, data any) error
}

type Service struct {
	store   *store.Store
	drafter Drafter
	mailer  outreach.Mailer
	events  Publisher
	logger  *slog.Logger
}

// NewService wires the visitor flow. events may be nil.
func NewService(s *store.Store, drafter Drafter, mailer outreach.Mailer, events Publisher, logger *slog.Logger) *Service {
	return &Service{store: s, drafter: drafter, mailer: mailer, events: events, logger: logger}
}

// Log records the submission. Recruiters ("hr") are sent a generated email
// first; a failed send is logged and the record is still written.
func (s *Service) Log(ctx context.Context, sub Submission) (store.Record, error) {
	userType := strings.ToLower(strings.TrimSpace(sub.UserType))

	rec := store.Record{
		Name:     sub.Name,
		Email:    strings.TrimSpace(sub.Email),
		UserType: userType,
		Company:  sub.Company,
		Role:     sub.Role,
		Answers:  sub.Answers,
		Status:   store.StatusFor(userType),
		Source:   store.SourcePortfolio,
	}

	emailSent := false
	if userType == UserTypeHR {
		req := prompt.OutreachRequest{
			RecipientName: sub.Name,
			RecipientRole: sub.Role,
			Company:       sub.Company,
		}
		if sub.IsHiring {
			req.RoleDescription = sub.Answers
		}

		draft := s.drafter.Draft(ctx, req)
		rec.Subject, rec.Body, rec.ModelUsed = draft.Subject, draft.Body, draft.Model

		if err := s.mailer.Send(ctx, rec.Email, draft.Subject, draft.Body); err != nil {
			s.logger.Warn("outreach email failed", "email", rec.Email, "error", redact.Error(err))
		} else {
			emailSent = true
		}
	}

	saved, err := s.store.Append(ctx, rec)
	if err != nil {
		return store.Record{}, fmt.Errorf("log visitor: %w", err)
	}
	s.logger.Info("visitor logged",
		"id", saved.ID,
		"user_type", saved.UserType,
		"email_sent", emailSent,
		"model_used", saved.ModelUsed,
	)

	if s.events != nil {
		ev := hermes.VisitorLogged{
			RecordID:  saved.ID,
			UserType:  saved.UserType,
			Company:   saved.Company,
			EmailSent: emailSent,
			ModelUsed: saved.ModelUsed,
			LoggedAt:  saved.Timestamp,
		}
		if err := s.events.Publish(hermes.SubjectVisitorLogged, ev); err != nil {
			s.logger.Warn("failed to publish visitor event", "error", err)
		}
	}
	return saved, nil
}
