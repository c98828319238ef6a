// Package export writes dated snapshots of the visitor log and mails the
// owner a digest.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/MikeSquared-Agency/axion/internal/hermes"
	"github.com/MikeSquared-Agency/axion/internal/outreach"
	"github.com/MikeSquared-Agency/axion/internal/redact"
	"github.com/MikeSquared-Agency/axion/internal/store"
)

type Publisher interface {
	Publish(subject string, data any) error
}

// Result describes one completed export.
type Result struct {
	Path       string
	Records    int
	DigestSent bool
}

type Exporter struct {
	store      *store.Store
	mailer     outreach.Mailer
	events     Publisher
	dir        string
	ownerEmail string
	logger     *slog.Logger
}

// NewExporter builds an exporter. events may be nil; an empty ownerEmail
// skips the digest.
func NewExporter(s *store.Store, mailer outreach.Mailer, events Publisher, dir, ownerEmail string, logger *slog.Logger) *Exporter {
	return &Exporter{store: s, mailer: mailer, events: events, dir: dir, ownerEmail: ownerEmail, logger: logger}
}

// Run snapshots every record to dir/visitors-YYYY-MM-DD.csv. A failed digest
// is logged and does not fail the export.
func (e *Exporter) Run(ctx context.Context, now time.Time) (Result, error) {
	records, err := e.store.Records(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read records: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.dir, "visitors-"+now.Format("2006-01-02")+".csv")
	if err := writeSnapshot(path, records); err != nil {
		return Result{}, err
	}

	res := Result{Path: path, Records: len(records)}
	e.logger.Info("snapshot written", "path", path, "records", len(records))

	if e.ownerEmail != "" {
		subject := "Daily Visitor Log - " + now.Format("02 Jan 2006")
		body := fmt.Sprintf("Visitor log snapshot for %s.\nRecords: %d\nSnapshot: %s",
			now.Format("02 Jan 2006"), len(records), path)
		if err := e.mailer.Send(ctx, e.ownerEmail, subject, body); err != nil {
			e.logger.Warn("digest email failed", "error", redact.Error(err))
		} else {
			res.DigestSent = true
		}
	}

	if e.events != nil {
		ev := hermes.ExportCompleted{
			Path:       res.Path,
			Records:    res.Records,
			DigestSent: res.DigestSent,
			ExportedAt: now.UTC(),
		}
		if err := e.events.Publish(hermes.SubjectExportCompleted, ev); err != nil {
			e.logger.Warn("failed to publish export event", "error", err)
		}
	}
	return res, nil
}

func writeSnapshot(path string, records []store.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := store.WriteCSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	return nil
}
