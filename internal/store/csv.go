package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// CSV is a workbook-file backend: a header row followed by one row per
// record. Columns are located by header name, so files written with a
// different column order are still readable; they are rewritten in
// canonical order on the next append.
type CSV struct {
	path   string
	logger *slog.Logger
}

func OpenCSV(path string, logger *slog.Logger) (*CSV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("csv store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	c := &CSV{path: path, logger: logger}
	if _, _, err := c.read(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CSV) Load(_ context.Context) ([]Record, error) {
	_, records, err := c.read()
	return records, err
}

func (c *CSV) Append(_ context.Context, r Record) error {
	header, records, err := c.read()
	if err != nil {
		return err
	}
	if header == nil || !slices.Equal(header, Columns) {
		return c.rewrite(append(records, r))
	}

	f, err := os.OpenFile(c.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.path, err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(r.Row()); err != nil {
		f.Close()
		return fmt.Errorf("write row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush row: %w", err)
	}
	return f.Close()
}

// Update replaces the row at pos. Rows are addressed by position because
// hand-edited workbooks may carry blank or repeated ids.
func (c *CSV) Update(_ context.Context, pos int, r Record) error {
	_, records, err := c.read()
	if err != nil {
		return err
	}
	if pos < 0 || pos >= len(records) {
		return fmt.Errorf("record position %d out of range (%d records)", pos, len(records))
	}
	records[pos] = r
	return c.rewrite(records)
}

func (c *CSV) Close() error { return nil }

// read returns a nil header when the file does not exist yet or is empty.
func (c *CSV) read() ([]string, []Record, error) {
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", c.path, err)
	}
	defer f.Close()

	header, records, err := readCSV(f, func(line int, ts string) {
		c.logger.Warn("unparseable timestamp left blank", "path", c.path, "line", line, "value", ts)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	return header, records, nil
}

// rewrite replaces the file through a temp file and rename so readers never
// see a half-written workbook.
func (c *CSV) rewrite(records []Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".visitors-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := WriteCSV(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

// WriteCSV writes records under the canonical header.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a header row and the records beneath it. An empty input
// yields a nil header. The id and email columns are required. Timestamps
// that do not parse are left zero.
func ReadCSV(r io.Reader) ([]string, []Record, error) {
	return readCSV(r, func(int, string) {})
}

func readCSV(r io.Reader, badTimestamp func(line int, value string)) ([]string, []Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		header[i] = name
		index[name] = i
	}
	for _, name := range []string{"id", "email"} {
		if _, ok := index[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return header, records, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		rec, bad := recordFromRow(index, row)
		if bad != "" {
			badTimestamp(line, bad)
		}
		records = append(records, rec)
	}
}
