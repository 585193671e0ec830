package scenario

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ---------------------------------------------------------------------------
// XLSX codec
// ---------------------------------------------------------------------------

// XLSXCodec reads and writes scenario tables stored as spreadsheets.
// Only the first sheet is used; cell values are treated as plain strings.
type XLSXCodec struct{}

// Decode reads the first sheet of the workbook into a Table.
func (XLSXCodec) Decode(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

// DecodeHeader reads only the first row of the first sheet.
func (x XLSXCodec) DecodeHeader(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	iter, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer iter.Close()

	if !iter.Next() {
		return nil, nil
	}
	header, err := iter.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return header, nil
}

// Encode writes the table to a new single-sheet workbook.
func (XLSXCodec) Encode(path string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeSheetRow(f, sheet, 1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeSheetRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheet, start, &values)
}
