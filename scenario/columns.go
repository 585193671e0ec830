package scenario

import "strings"

// ---------------------------------------------------------------------------
// Column index
// ---------------------------------------------------------------------------

// Target is one target-language column resolved from a header.
type Target struct {
	// Lang is the language code taken from the header cell.
	Lang string
	// Col is the zero-based column position.
	Col int
}

// ColumnIndex resolves the source column position and the target-language
// columns of one scenario file. Built once per file from its header.
type ColumnIndex struct {
	// SourceCol is the position of the source-language column.
	SourceCol int
	// Targets lists the target-language columns in header order.
	Targets []Target
}

// IndexColumns scans a header row and builds the column index.
//
// The source column is located by exact name match. Every non-empty header
// cell strictly after it becomes a target language; when filter is
// non-empty, only codes present in the filter are kept, in header order.
// Duplicate codes keep their first position in the target order, but the
// later occurrence's column index wins (positional lookup over the header's
// own sequence).
//
// Returns ok=false when the header has no source column; the file is
// then skipped by the scanner.
func IndexColumns(header []string, sourceColumn string, filter []string) (ColumnIndex, bool) {
	src := -1
	for i, name := range header {
		if name == sourceColumn {
			src = i
			break
		}
	}
	if src == -1 {
		return ColumnIndex{}, false
	}

	wanted := make(map[string]bool, len(filter))
	for _, code := range filter {
		if code = strings.TrimSpace(code); code != "" {
			wanted[code] = true
		}
	}

	idx := ColumnIndex{SourceCol: src}
	pos := make(map[string]int) // lang -> index into idx.Targets
	for col := src + 1; col < len(header); col++ {
		code := strings.TrimSpace(header[col])
		if code == "" {
			continue
		}
		if len(wanted) > 0 && !wanted[code] {
			continue
		}
		if at, dup := pos[code]; dup {
			idx.Targets[at].Col = col
			continue
		}
		pos[code] = len(idx.Targets)
		idx.Targets = append(idx.Targets, Target{Lang: code, Col: col})
	}
	return idx, true
}
