package outreach

import (
	"context"
	"log/slog"

	"github.com/MikeSquared-Agency/axion/internal/completion"
	"github.com/MikeSquared-Agency/axion/internal/prompt"
)

// Draft is a generated email ready to send. Model is empty when every
// provider failed and the fallback text was used.
type Draft struct {
	Subject string
	Body    string
	Model   string
}

// Drafter generates recruiter emails through an ordered list of providers.
type Drafter struct {
	runner     *completion.Runner
	providers  []string
	profile    *prompt.Profile
	resumeLink string
}

func NewDrafter(client completion.Completer, providers []string, profile *prompt.Profile, resumeLink string, logger *slog.Logger) *Drafter {
	fallback := "Hi, thank you for reaching out. " + ResumeNote(profile.OwnerName(), resumeLink)
	return &Drafter{
		runner:     completion.NewRunner(client, fallback, logger.With("flow", "outreach")),
		providers:  providers,
		profile:    profile,
		resumeLink: resumeLink,
	}
}

func (d *Drafter) Draft(ctx context.Context, req prompt.OutreachRequest) Draft {
	text, provider := d.runner.Run(ctx, d.providers, prompt.BuildOutreachPrompt(d.profile, req))
	if provider == "" {
		return Draft{Subject: DefaultSubject, Body: text}
	}
	subject, body := SplitSubjectBody(text)
	return Draft{
		Subject: subject,
		Body:    body + "\n\n" + ResumeNote(d.profile.OwnerName(), d.resumeLink),
		Model:   provider,
	}
}
