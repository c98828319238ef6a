// Package outreach turns model output into emails and runs the contact
// follow-up actions.
package outreach

import (
	"strings"
)

// DefaultSubject is used when generated text carries no subject line.
const DefaultSubject = "Let's stay connected"

const subjectMarker = "subject:"

// SplitSubjectBody takes the first "Subject:" line (case-insensitive) as the
// subject and joins every other non-blank line into the body. Splitting a
// body again yields the same body and DefaultSubject.
func SplitSubjectBody(raw string) (subject, body string) {
	var bodyLines []string
	found := false
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if isSubjectLine(line) {
			if !found {
				subject = strings.TrimSpace(strings.TrimSpace(line)[len(subjectMarker):])
				found = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	if !found {
		subject = DefaultSubject
	}
	return subject, strings.TrimSpace(strings.Join(bodyLines, "\n"))
}

func isSubjectLine(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= len(subjectMarker) && strings.EqualFold(line[:len(subjectMarker)], subjectMarker)
}

// ResumeNote is the sentence appended to every outgoing email.
func ResumeNote(owner, resumeLink string) string {
	return "You can view " + owner + "'s resume here: " + resumeLink
}
