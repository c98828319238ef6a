package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustProfile(t *testing.T) *Profile {
	t.Helper()
	p, err := LoadProfile("")
	if err != nil {
		t.Fatalf("load embedded profile: %v", err)
	}
	return p
}

func TestLoadProfile_Embedded(t *testing.T) {
	p := mustProfile(t)

	if p.Owner.FullName != "Mohammed Karab Ehtesham" {
		t.Errorf("unexpected owner %q", p.Owner.FullName)
	}
	if p.OwnerName() != "Mohammed" {
		t.Errorf("unexpected short name %q", p.OwnerName())
	}
	if len(p.Skills) != 6 || len(p.Projects) != 6 || len(p.Publications) != 4 || len(p.Contact) != 3 {
		t.Errorf("unexpected profile sizes: skills=%d projects=%d pubs=%d contact=%d",
			len(p.Skills), len(p.Projects), len(p.Publications), len(p.Contact))
	}
}

func TestLoadProfile_FromFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("owner:\n  full_name: Ada Lovelace\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OwnerName() != "Ada" {
		t.Errorf("expected derived short name Ada, got %q", p.OwnerName())
	}
	if p.Assistant != "Axion" {
		t.Errorf("expected default assistant name, got %q", p.Assistant)
	}
}

func TestParseProfile_Invalid(t *testing.T) {
	if _, err := ParseProfile([]byte("skills: [")); err == nil {
		t.Error("expected yaml error")
	}
	if _, err := ParseProfile([]byte("assistant: Bot\n")); err == nil {
		t.Error("expected missing owner error")
	}
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected read error")
	}
}

func TestBuildChatPrompt(t *testing.T) {
	p := mustProfile(t)
	out := BuildChatPrompt(p, "What projects use OpenCV?")

	checks := []string{
		"You are Axion",
		"IMPORTANT TOPIC CONSTRAINTS",
		"under 120 words",
		"Avoid markdown",
		"Include GitHub, LinkedIn, or email only if relevant",
		"- Languages: Python, JavaScript",
		"- Autism Support System: Real-time emotion recognition using ML and OpenCV",
		"CCNA Certifications, Cybersecurity Essentials",
		"- Amazon Sales Analysis (IJIRCCE)",
		"- GitHub: https://github.com/Im-Mohammed",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("expected chat prompt to contain %q", check)
		}
	}
	if !strings.HasSuffix(out, "User Query:\nWhat projects use OpenCV?") {
		t.Errorf("expected prompt to end with the verbatim query, got tail %q", out[len(out)-60:])
	}
}

func TestBuildOutreachPrompt_Hiring(t *testing.T) {
	p := mustProfile(t)
	out := BuildOutreachPrompt(p, OutreachRequest{
		RecipientName:   "Priya",
		RecipientRole:   "Engineering Manager",
		Company:         "Acme",
		RoleDescription: "Backend engineer, Python and AWS",
	})

	checks := []string{
		"to Priya, a Engineering Manager at Acme, who is hiring for: \"Backend engineer, Python and AWS\"",
		"Compare his background to the role",
		"under 200 words, in 3 short paragraphs",
		"Subject:",
		"No headings, markdown, or multiple versions",
		"no \"Dear\"",
		"Be in first person, from Mohammed",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("expected hiring prompt to contain %q", check)
		}
	}
	if strings.Contains(out, "150 words") {
		t.Error("hiring prompt must not carry the future-interest length limit")
	}
}

func TestBuildOutreachPrompt_NotHiring(t *testing.T) {
	p := mustProfile(t)
	out := BuildOutreachPrompt(p, OutreachRequest{
		RecipientName: "Sam",
		Company:       "Globex",
	})

	checks := []string{
		"to Sam, a Hiring Manager at Globex, who is not currently hiring",
		"future opportunities",
		"under 150 words, in 2 short paragraphs",
		"starting with \"Subject:\"",
		"No headings, markdown, or multiple versions",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("expected future-interest prompt to contain %q", check)
		}
	}
	if strings.Contains(out, "200 words") {
		t.Error("future-interest prompt must not carry the hiring length limit")
	}
}

func TestOutreachRequest_Hiring(t *testing.T) {
	if (OutreachRequest{RoleDescription: "  "}).Hiring() {
		t.Error("blank role description must not select the hiring variant")
	}
	if !(OutreachRequest{RoleDescription: "SRE"}).Hiring() {
		t.Error("role description must select the hiring variant")
	}
}
