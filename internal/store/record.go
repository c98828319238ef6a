package store

import (
	"strings"
	"time"
)

// TimeLayout is how timestamps are written to tabular backends.
const TimeLayout = "2006-01-02 15:04:05"

// Record sources.
const (
	SourcePortfolio = "portfolio"
	SourceContact   = "contact"
)

// Columns is the canonical column order shared by the CSV and Postgres
// backends and by exported snapshots.
var Columns = []string{
	"id", "name", "email", "user_type", "company", "role", "answers",
	"status", "timestamp", "subject", "body", "model_used",
	"github_url", "linkedin_url", "source",
}

// Record is one logged visitor or contact interaction.
type Record struct {
	ID          string
	Name        string
	Email       string
	UserType    string
	Company     string
	Role        string
	Answers     string
	Status      string
	Timestamp   time.Time
	Subject     string
	Body        string
	ModelUsed   string
	GithubURL   string
	LinkedinURL string
	Source      string
}

// ContactFields are the enrichment fields an upsert may write. Empty values
// are left untouched on an existing record.
type ContactFields struct {
	Name        string
	GithubURL   string
	LinkedinURL string
	Source      string
}

// UpsertOutcome reports which branch an upsert took.
type UpsertOutcome int

const (
	UpdatedExisting UpsertOutcome = iota + 1
	AppendedNew
)

func (o UpsertOutcome) String() string {
	switch o {
	case UpdatedExisting:
		return "updated_existing"
	case AppendedNew:
		return "appended_new"
	default:
		return "unknown"
	}
}

// StatusFor derives the status label of a visitor submission, e.g. "Hr Logged".
func StatusFor(userType string) string {
	userType = strings.TrimSpace(userType)
	if userType == "" {
		return "Logged"
	}
	return strings.ToUpper(userType[:1]) + strings.ToLower(userType[1:]) + " Logged"
}

// ValidEmail reports whether email may be returned by a latest-email lookup:
// non-empty, containing "@", and not the "string" placeholder that API
// explorers submit by default.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return false
	}
	local, _, _ := strings.Cut(email, "@")
	return !IsPlaceholder(email) && !IsPlaceholder(local)
}

// IsPlaceholder reports whether s is the "string" placeholder literal.
func IsPlaceholder(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "string")
}

// Row renders r in Columns order.
func (r Record) Row() []string {
	ts := ""
	if !r.Timestamp.IsZero() {
		ts = r.Timestamp.Format(TimeLayout)
	}
	return []string{
		r.ID, r.Name, r.Email, r.UserType, r.Company, r.Role, r.Answers,
		r.Status, ts, r.Subject, r.Body, r.ModelUsed,
		r.GithubURL, r.LinkedinURL, r.Source,
	}
}

// recordFromRow maps a row onto a Record using a header index. Columns
// missing from the header stay empty. A timestamp cell that does not parse
// leaves Timestamp zero and is returned as bad.
func recordFromRow(index map[string]int, row []string) (r Record, bad string) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	r = Record{
		ID:          get("id"),
		Name:        get("name"),
		Email:       get("email"),
		UserType:    get("user_type"),
		Company:     get("company"),
		Role:        get("role"),
		Answers:     get("answers"),
		Status:      get("status"),
		Subject:     get("subject"),
		Body:        get("body"),
		ModelUsed:   get("model_used"),
		GithubURL:   get("github_url"),
		LinkedinURL: get("linkedin_url"),
		Source:      get("source"),
	}
	if ts := strings.TrimSpace(get("timestamp")); ts != "" {
		t, err := time.ParseInLocation(TimeLayout, ts, time.UTC)
		if err != nil {
			return r, ts
		}
		r.Timestamp = t
	}
	return r, ""
}

func (r *Record) apply(f ContactFields, now time.Time) {
	if f.GithubURL != "" {
		r.GithubURL = f.GithubURL
	}
	if f.LinkedinURL != "" {
		r.LinkedinURL = f.LinkedinURL
	}
	if f.Source != "" {
		r.Source = f.Source
	}
	r.Timestamp = now
}
