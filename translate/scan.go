// Package translate implements the translation workload orchestrator:
// task discovery over scenario tables, request dispatch to a backend,
// response alignment back to source rows, and incremental writeback so
// partial progress survives failure.
package translate

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scenkit/scenkit/scenario"
)

// ---------------------------------------------------------------------------
// Workload model
// ---------------------------------------------------------------------------

// Task is one (file, target-language) unit of translation work. It is
// created by Discover and consumed exactly once by Run.
type Task struct {
	// Path is the input table file.
	Path string
	// Lang is the target language code.
	Lang string
	// Col is the target column position in the file's header.
	Col int
	// RowIndices lists the row positions requiring translation, in row
	// order: every row in overwrite mode, only rows with an empty target
	// cell in resume mode.
	RowIndices []int
	// SourceLines holds the source cells aligned 1:1 with RowIndices.
	SourceLines []string
}

// ScanOptions controls workload discovery.
type ScanOptions struct {
	// SourceColumn is the header name of the source-language column.
	SourceColumn string
	// Languages filters target codes; empty means all discovered.
	Languages []string
	// Resume skips rows whose target cell is already non-empty.
	Resume bool
}

// Workload is the ordered task list plus discovery accounting.
type Workload struct {
	// Tasks in file order, then header order within a file.
	Tasks []Task
	// FilesScanned counts table files that produced tasks.
	FilesScanned int
	// FilesSkipped counts unreadable files and files without the source
	// column. Never an error.
	FilesSkipped int
	// TasksSkipped counts tasks dropped because every row was already
	// translated (resume mode).
	TasksSkipped int
}

// ---------------------------------------------------------------------------
// Discovery
// ---------------------------------------------------------------------------

// Discover enumerates table files under root (a single file or a directory
// walked recursively), parses headers, and builds the task list. It is
// read-only and side-effect-free, so it doubles as the dry-run estimate.
//
// A missing root or a root yielding no table files is the only fatal
// condition; unreadable files and files without the source column are
// silently counted and skipped.
func Discover(root string, opts ScanOptions) (*Workload, error) {
	files, err := expandRoot(root)
	if err != nil {
		return nil, err
	}

	wl := &Workload{}
	for _, path := range files {
		codec, ok := scenario.ForPath(path)
		if !ok {
			continue
		}

		header, err := codec.DecodeHeader(path)
		if err != nil || len(header) == 0 {
			wl.FilesSkipped++
			continue
		}
		idx, ok := scenario.IndexColumns(header, opts.SourceColumn, opts.Languages)
		if !ok || len(idx.Targets) == 0 {
			wl.FilesSkipped++
			continue
		}

		table, err := codec.Decode(path)
		if err != nil {
			wl.FilesSkipped++
			continue
		}

		produced := false
		for _, target := range idx.Targets {
			task := buildTask(path, table, idx.SourceCol, target, opts.Resume)
			if len(task.RowIndices) == 0 {
				wl.TasksSkipped++
				continue
			}
			wl.Tasks = append(wl.Tasks, task)
			produced = true
		}
		if produced {
			wl.FilesScanned++
		}
	}
	return wl, nil
}

// buildTask selects the rows one task covers and captures their source cells.
func buildTask(path string, table *scenario.Table, sourceCol int, target scenario.Target, resume bool) Task {
	task := Task{Path: path, Lang: target.Lang, Col: target.Col}
	for row := 0; row < table.RowCount(); row++ {
		if resume && strings.TrimSpace(table.Cell(row, target.Col)) != "" {
			continue
		}
		task.RowIndices = append(task.RowIndices, row)
		task.SourceLines = append(task.SourceLines, table.Cell(row, sourceCol))
	}
	return task
}

// expandRoot flattens the root path into an ordered list of table files.
func expandRoot(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("path not found: %s", root)
	}

	if !info.IsDir() {
		if !scenario.IsTableFile(root) {
			return nil, fmt.Errorf("not a recognized table file: %s", root)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if scenario.IsTableFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no table files found under %s", root)
	}
	return files, nil
}

// ---------------------------------------------------------------------------
// Output layout
// ---------------------------------------------------------------------------

// outputSuffix is appended to the input root to form the output root.
const outputSuffix = "_translated"

// Roots derives the mirror roots for a run. For a single file the input
// root is the file's directory; for a directory it is the directory itself.
func Roots(root string) (inputRoot, outputRoot string) {
	inputRoot = filepath.Clean(root)
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		inputRoot = filepath.Dir(inputRoot)
	}
	return inputRoot, inputRoot + outputSuffix
}
