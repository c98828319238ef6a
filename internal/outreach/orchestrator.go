package outreach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/axion/internal/redact"
	"github.com/MikeSquared-Agency/axion/internal/store"
)

const (
	StatusTriggered = "outreach triggered"
	StatusFailed    = "failed"

	ReasonNoEmail          = "No email available"
	ReasonStoreUnavailable = "Record store unavailable"

	DefaultName  = "Visitor"
	introSubject = "Excited to connect!"
)

// ActionResult is the outcome of a best-effort external action.
type ActionResult struct {
	OK     bool
	Reason string
}

func Succeeded() ActionResult { return ActionResult{OK: true} }

func Failed(format string, args ...any) ActionResult {
	return ActionResult{Reason: redact.Secrets(fmt.Sprintf(format, args...))}
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Follower interface {
	Follow(ctx context.Context, username string) ActionResult
}

type Connector interface {
	Connect(ctx context.Context, name, email string) ActionResult
}

// ContactRequest is a contact-form submission. Handles are bare usernames.
type ContactRequest struct {
	Name     string
	Github   string
	Linkedin string
}

// Report flags which actions were attempted, not whether the remote
// service confirmed them.
type Report struct {
	Status            string
	Reason            string
	EmailSent         bool
	GithubFollowed    bool
	LinkedinConnected bool
}

func (r Report) Failed() bool { return r.Status == StatusFailed }

type Orchestrator struct {
	store      *store.Store
	mailer     Mailer
	follower   Follower
	connector  Connector
	owner      string
	resumeLink string
	logger     *slog.Logger
}

func NewOrchestrator(s *store.Store, mailer Mailer, follower Follower, connector Connector, owner, resumeLink string, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:      s,
		mailer:     mailer,
		follower:   follower,
		connector:  connector,
		owner:      owner,
		resumeLink: resumeLink,
		logger:     logger,
	}
}

// Run resolves the most recent visitor email, records the contact links
// against it and triggers the follow-up actions.
func (o *Orchestrator) Run(ctx context.Context, req ContactRequest) Report {
	name := strings.TrimSpace(req.Name)
	github := strings.TrimSpace(req.Github)
	linkedin := strings.TrimSpace(req.Linkedin)

	var email string
	var found bool
	err := o.store.Do(ctx, func(tx *store.Tx) error {
		latest, recordName, ok, err := tx.FindLatestValidEmail(ctx)
		if err != nil || !ok {
			return err
		}
		email, found = latest, true

		if name == "" || store.IsPlaceholder(name) {
			name = recordName
			if name == "" {
				name = DefaultName
			}
		}

		fields := store.ContactFields{Name: name, Source: store.SourceContact}
		if github != "" {
			fields.GithubURL = "https://github.com/" + github
		}
		if linkedin != "" {
			fields.LinkedinURL = "https://linkedin.com/in/" + linkedin
		}
		outcome, err := tx.UpsertByEmail(ctx, email, fields)
		if err != nil {
			o.logger.Error("failed to record contact", "email", email, "error", err)
			return nil
		}
		o.logger.Info("contact recorded", "email", email, "outcome", outcome.String())
		return nil
	})
	if err != nil {
		o.logger.Error("failed to resolve contact email", "error", err)
		return Report{Status: StatusFailed, Reason: ReasonStoreUnavailable}
	}
	if !found {
		o.logger.Warn("no valid email in record store")
		return Report{Status: StatusFailed, Reason: ReasonNoEmail}
	}

	report := Report{Status: StatusTriggered}

	if github == "" && linkedin == "" {
		body := fmt.Sprintf("Hi %s, thanks for reaching out! %s's portfolio is designed to engage, adapt, and respond with clarity and purpose. "+
			"Whether you're exploring his work or looking to collaborate, you're always welcome here.\n\n%s",
			name, o.owner, ResumeNote(o.owner, o.resumeLink))
		if err := o.mailer.Send(ctx, email, introSubject, body); err != nil {
			o.logger.Warn("intro email failed", "email", email, "error", redact.Error(err))
		}
		report.EmailSent = true
	}

	if github != "" {
		if res := o.follower.Follow(ctx, github); !res.OK {
			o.logger.Warn("github follow failed", "username", github, "reason", res.Reason)
		}
		report.GithubFollowed = true
	}

	if linkedin != "" && name != "" {
		if res := o.connector.Connect(ctx, name, email); !res.OK {
			o.logger.Warn("linkedin connect failed", "name", name, "reason", res.Reason)
		}
		report.LinkedinConnected = true
	}

	o.logger.Info("contact flow completed",
		"email_sent", report.EmailSent,
		"github_followed", report.GithubFollowed,
		"linkedin_connected", report.LinkedinConnected,
	)
	return report
}
