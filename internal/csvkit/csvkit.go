package csvkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is a fully loaded CSV file with its header row split off.
type Table struct {
	Header  []string
	Records [][]string
}

// ReadFile loads a CSV file into memory. The first row becomes the header.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv: empty input")
	}
	return &Table{Header: rows[0], Records: rows[1:]}, nil
}

// ColumnIndex resolves a header name to its position.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found", name)
}

// Column returns every value of the named column, skipping records too short
// to hold it.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(t.Records))
	for _, rec := range t.Records {
		if idx < len(rec) {
			values = append(values, rec[idx])
		}
	}
	return values, nil
}

// WriteFile writes a header plus records as CSV, creating or truncating path.
func WriteFile(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
