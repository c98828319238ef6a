// Package store keeps the ordered visitor log and its upsert-by-email
// semantics over a pluggable backend.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Backend is a durable, ordered sequence of records. Load returns records
// oldest first. Update replaces the record at pos in that order; callers
// hold the store lock between Load and Update so positions stay stable.
type Backend interface {
	Load(ctx context.Context) ([]Record, error)
	Append(ctx context.Context, r Record) error
	Update(ctx context.Context, pos int, r Record) error
	Close() error
}

// Store serialises every read-modify-write on its backend through a single
// mutex, so a lookup followed by an upsert cannot interleave with another
// request's writes.
type Store struct {
	mu      sync.Mutex
	backend Backend
	now     func() time.Time
	newID   func() string
}

func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		newID:   uuid.NewString,
	}
}

// Tx is the view of the store handed to Do. It is only valid inside the
// callback.
type Tx struct {
	s *Store
}

// Do runs fn while holding the writer lock.
func (s *Store) Do(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&Tx{s: s})
}

func (s *Store) Append(ctx context.Context, r Record) (Record, error) {
	var out Record
	err := s.Do(ctx, func(tx *Tx) error {
		var err error
		out, err = tx.Append(ctx, r)
		return err
	})
	return out, err
}

func (s *Store) FindLatestValidEmail(ctx context.Context) (email, name string, ok bool, err error) {
	err = s.Do(ctx, func(tx *Tx) error {
		email, name, ok, err = tx.FindLatestValidEmail(ctx)
		return err
	})
	return email, name, ok, err
}

func (s *Store) UpsertByEmail(ctx context.Context, email string, f ContactFields) (UpsertOutcome, error) {
	var out UpsertOutcome
	err := s.Do(ctx, func(tx *Tx) error {
		var err error
		out, err = tx.UpsertByEmail(ctx, email, f)
		return err
	})
	return out, err
}

// Records returns a copy of every record, oldest first.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	var out []Record
	err := s.Do(ctx, func(tx *Tx) error {
		var err error
		out, err = tx.Records(ctx)
		return err
	})
	return out, err
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}

// Append assigns a fresh ID, and a timestamp when none is set, then persists r.
// Any ID already on r is replaced.
func (tx *Tx) Append(ctx context.Context, r Record) (Record, error) {
	r.ID = tx.s.newID()
	if r.Timestamp.IsZero() {
		r.Timestamp = tx.s.now()
	}
	if err := tx.s.backend.Append(ctx, r); err != nil {
		return Record{}, fmt.Errorf("append record: %w", err)
	}
	return r, nil
}

// FindLatestValidEmail scans newest to oldest for the first record with a
// usable email.
func (tx *Tx) FindLatestValidEmail(ctx context.Context) (email, name string, ok bool, err error) {
	records, err := tx.s.backend.Load(ctx)
	if err != nil {
		return "", "", false, fmt.Errorf("load records: %w", err)
	}
	for i := len(records) - 1; i >= 0; i-- {
		if ValidEmail(records[i].Email) {
			return records[i].Email, records[i].Name, true, nil
		}
	}
	return "", "", false, nil
}

// UpsertByEmail updates the newest record whose email matches exactly, or
// appends a new one. Only non-empty fields are written to an existing record;
// the name is only used when appending.
func (tx *Tx) UpsertByEmail(ctx context.Context, email string, f ContactFields) (UpsertOutcome, error) {
	records, err := tx.s.backend.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load records: %w", err)
	}

	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Email != email {
			continue
		}
		r := records[i]
		r.apply(f, tx.s.now())
		if err := tx.s.backend.Update(ctx, i, r); err != nil {
			return 0, fmt.Errorf("update record %d: %w", i, err)
		}
		return UpdatedExisting, nil
	}

	r := Record{Name: f.Name, Email: email}
	r.apply(f, tx.s.now())
	if _, err := tx.Append(ctx, r); err != nil {
		return 0, err
	}
	return AppendedNew, nil
}

func (tx *Tx) Records(ctx context.Context) ([]Record, error) {
	records, err := tx.s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out, nil
}
