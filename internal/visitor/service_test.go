package visitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/MikeSquared-Agency/axion/internal/hermes"
	"github.com/MikeSquared-Agency/axion/internal/outreach"
	"github.com/MikeSquared-Agency/axion/internal/prompt"
	"github.com/MikeSquared-Agency/axion/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDrafter struct {
	requests []prompt.OutreachRequest
	draft    outreach.Draft
}

func (d *fakeDrafter) Draft(_ context.Context, req prompt.OutreachRequest) outreach.Draft {
	d.requests = append(d.requests, req)
	return d.draft
}

type fakeMailer struct {
	to, subject, body string
	calls             int
	err               error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.calls++
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

type published struct {
	subject string
	data    any
}

type fakePublisher struct {
	events []published
}

func (p *fakePublisher) Publish(subject string, data any) error {
	p.events = append(p.events, published{subject, data})
	return nil
}

func newService(d *fakeDrafter, m *fakeMailer, p Publisher) (*Service, *store.Store) {
	s := store.New(store.NewMemory())
	return NewService(s, d, m, p, discardLogger()), s
}

func TestLog_RecruiterHiring(t *testing.T) {
	d := &fakeDrafter{draft: outreach.Draft{Subject: "Hi", Body: "Body\n\nresume", Model: "m1"}}
	m := &fakeMailer{}
	pub := &fakePublisher{}
	svc, s := newService(d, m, pub)

	rec, err := svc.Log(context.Background(), Submission{
		Name: "Priya", Email: " priya@acme.com ", UserType: "HR", Company: "Acme",
		Role: "EM", Answers: "Backend engineer", IsHiring: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.requests) != 1 || d.requests[0].RoleDescription != "Backend engineer" || d.requests[0].RecipientRole != "EM" {
		t.Errorf("unexpected draft requests %+v", d.requests)
	}
	if m.calls != 1 || m.to != "priya@acme.com" || m.subject != "Hi" {
		t.Errorf("unexpected mail %+v", m)
	}
	if rec.Status != "Hr Logged" || rec.Source != store.SourcePortfolio || rec.ModelUsed != "m1" || rec.Subject != "Hi" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.ID == "" {
		t.Error("expected store-assigned id")
	}

	records, _ := s.Records(context.Background())
	if len(records) != 1 || records[0].ID != rec.ID {
		t.Errorf("expected one stored record, got %+v", records)
	}

	if len(pub.events) != 1 || pub.events[0].subject != hermes.SubjectVisitorLogged {
		t.Fatalf("expected one visitor event, got %+v", pub.events)
	}
	ev := pub.events[0].data.(hermes.VisitorLogged)
	if !ev.EmailSent || ev.RecordID != rec.ID {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestLog_RecruiterNotHiringIgnoresAnswers(t *testing.T) {
	d := &fakeDrafter{draft: outreach.Draft{Subject: outreach.DefaultSubject, Body: "fallback"}}
	svc, _ := newService(d, &fakeMailer{}, nil)

	rec, err := svc.Log(context.Background(), Submission{
		Name: "Sam", Email: "sam@globex.com", UserType: "hr", Company: "Globex", Answers: "just browsing",
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.requests[0].Hiring() {
		t.Error("expected the future-interest variant when not hiring")
	}
	if rec.ModelUsed != "" || rec.Subject != outreach.DefaultSubject {
		t.Errorf("unexpected fallback record %+v", rec)
	}
	if rec.Answers != "just browsing" {
		t.Error("answers must still be stored")
	}
}

func TestLog_VisitorSendsNothing(t *testing.T) {
	d := &fakeDrafter{}
	m := &fakeMailer{}
	svc, _ := newService(d, m, nil)

	rec, err := svc.Log(context.Background(), Submission{Name: "Bo", Email: "bo@x.com", UserType: "visitor"})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.requests) != 0 || m.calls != 0 {
		t.Error("visitors must not trigger generation or email")
	}
	if rec.Status != "Visitor Logged" || rec.Subject != "" || rec.Body != "" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestLog_MailFailureStillRecords(t *testing.T) {
	d := &fakeDrafter{draft: outreach.Draft{Subject: "Hi", Body: "b", Model: "m1"}}
	m := &fakeMailer{err: errors.New("resend error (status 500)")}
	pub := &fakePublisher{}
	svc, s := newService(d, m, pub)

	if _, err := svc.Log(context.Background(), Submission{Email: "a@x.com", UserType: "hr"}); err != nil {
		t.Fatal(err)
	}
	records, _ := s.Records(context.Background())
	if len(records) != 1 {
		t.Errorf("expected record written despite mail failure, got %d", len(records))
	}
	if pub.events[0].data.(hermes.VisitorLogged).EmailSent {
		t.Error("expected email_sent false after a failed send")
	}
}
