package store

import (
	"context"
	"fmt"
)

// Memory is a process-local backend, used in tests and when no durable
// medium is configured.
type Memory struct {
	records []Record
}

func NewMemory(seed ...Record) *Memory {
	return &Memory{records: append([]Record(nil), seed...)}
}

func (m *Memory) Load(_ context.Context) ([]Record, error) {
	return append([]Record(nil), m.records...), nil
}

func (m *Memory) Append(_ context.Context, r Record) error {
	m.records = append(m.records, r)
	return nil
}

func (m *Memory) Update(_ context.Context, pos int, r Record) error {
	if pos < 0 || pos >= len(m.records) {
		return fmt.Errorf("record position %d out of range (%d records)", pos, len(m.records))
	}
	m.records[pos] = r
	return nil
}

func (m *Memory) Close() error { return nil }
