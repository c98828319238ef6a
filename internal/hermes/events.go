// Package hermes publishes portfolio activity events over NATS.
package hermes

import "time"

const (
	SubjectVisitorLogged   = "portfolio.visitor.logged"
	SubjectExportCompleted = "portfolio.export.completed"
)

// VisitorLogged is emitted after a visitor submission is stored.
type VisitorLogged struct {
	RecordID  string    `json:"record_id"`
	UserType  string    `json:"user_type"`
	Company   string    `json:"company,omitempty"`
	EmailSent bool      `json:"email_sent"`
	ModelUsed string    `json:"model_used,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
}

// ExportCompleted is emitted after a snapshot is written.
type ExportCompleted struct {
	Path       string    `json:"path"`
	Records    int       `json:"records"`
	DigestSent bool      `json:"digest_sent"`
	ExportedAt time.Time `json:"exported_at"`
}
