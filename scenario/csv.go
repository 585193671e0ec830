package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ---------------------------------------------------------------------------
// CSV codec
// ---------------------------------------------------------------------------

// CSVCodec reads and writes comma-separated scenario tables.
// Records may have varying field counts; short rows survive a round-trip
// unchanged except for cells the orchestrator filled in.
type CSVCodec struct{}

// Decode reads the whole file into a Table. An empty file yields an
// empty table, not an error.
func (CSVCodec) Decode(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// DecodeHeader reads only the first record.
func (CSVCodec) DecodeHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return header, nil
}

// Encode writes header and rows back out.
func (CSVCodec) Encode(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header)
	records = append(records, t.Rows...)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
