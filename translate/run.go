package translate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scenkit/scenkit/backend"
	"github.com/scenkit/scenkit/glossary"
	"github.com/scenkit/scenkit/prompt"
	"github.com/scenkit/scenkit/scenario"
)

// ---------------------------------------------------------------------------
// Run options and report
// ---------------------------------------------------------------------------

// Options configures one translation run. Nothing is looked up from
// ambient state: the template text, glossary, and backend are constructed
// by the caller and passed in.
type Options struct {
	// SourceColumn is the header name of the source-language column.
	SourceColumn string
	// Languages filters target codes; empty means all discovered.
	Languages []string
	// Resume skips rows whose target cell is already non-empty.
	Resume bool
	// Template is the prompt template text (already loaded from the store).
	Template string
	// Backend performs the actual translation calls.
	Backend backend.Backend
	// Glossary supplies per-language terminology; nil disables the feature.
	Glossary *glossary.Glossary
	// OnLog emits informational messages.
	OnLog func(format string, args ...any)
	// OnError emits per-task failure messages.
	OnError func(format string, args ...any)
	// OnProgress is called after each task completes, success or not.
	OnProgress func(done, total int)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) logError(format string, args ...any) {
	if o.OnError != nil {
		o.OnError(format, args...)
	} else if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) progress(done, total int) {
	if o.OnProgress != nil {
		o.OnProgress(done, total)
	}
}

// Report accumulates run counters. Each task counts as one unit of
// progress regardless of row count.
type Report struct {
	TasksTotal    int
	TasksFailed   int
	TasksSkipped  int
	FilesSkipped  int
	ParseWarnings int
	Elapsed       time.Duration
}

// ---------------------------------------------------------------------------
// Orchestrator loop
// ---------------------------------------------------------------------------

// Run discovers the workload under root and processes every task in
// discovery order: render prompt, call the backend, align the response to
// source rows, persist the whole file to the mirrored output path.
//
// Every completed task is a durable checkpoint — a crash loses at most the
// in-flight task. No failure below this loop aborts the run; backend
// errors, parse degradation, and persistence errors become counters plus a
// log line, and the loop moves on. Cancellation is observed at task
// boundaries only.
//
// The returned error is non-nil only for fatal discovery problems (missing
// root, no table files) or context cancellation; the Report is valid in
// the cancellation case.
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	start := time.Now()

	wl, err := Discover(root, ScanOptions{
		SourceColumn: opts.SourceColumn,
		Languages:    opts.Languages,
		Resume:       opts.Resume,
	})
	if err != nil {
		return nil, err
	}

	inputRoot, outputRoot := Roots(root)
	report := &Report{
		TasksTotal:   len(wl.Tasks),
		TasksSkipped: wl.TasksSkipped,
		FilesSkipped: wl.FilesSkipped,
	}

	glos := opts.Glossary
	if glos == nil {
		glos = glossary.Empty()
	}

	// The current file's table is owned by this loop until its task set is
	// exhausted; tasks arrive grouped by file, so one table is live at a time.
	var (
		table     *scenario.Table
		tablePath string
	)

	total := len(wl.Tasks)
	done := 0

	for _, task := range wl.Tasks {
		select {
		case <-ctx.Done():
			report.Elapsed = time.Since(start)
			return report, ctx.Err()
		default:
		}

		rel := relPath(inputRoot, task.Path)

		if task.Path != tablePath {
			codec, _ := scenario.ForPath(task.Path)
			t, err := codec.Decode(task.Path)
			if err != nil {
				report.TasksFailed++
				opts.logError("reading %s: %v", rel, err)
				done++
				opts.progress(done, total)
				continue
			}
			table, tablePath = t, task.Path
		}

		opts.log("[%d/%d] %s -> %s (%d rows)", done+1, total, rel, task.Lang, len(task.RowIndices))

		req := prompt.Build(opts.Template, task.Lang, task.SourceLines, glos.Text(task.Lang))
		resp, err := opts.Backend.Send(ctx, req)
		if err != nil {
			report.TasksFailed++
			opts.logError("translation failed for %s (%s): %v", rel, task.Lang, err)
			done++
			opts.progress(done, total)
			continue
		}

		lines, degraded := ParseResponse(resp)
		if degraded != nil {
			report.ParseWarnings++
			opts.log("warning: %s (%s): %v", rel, task.Lang, degraded)
		}

		applyLines(table, task, lines)

		outPath := filepath.Join(outputRoot, rel)
		if err := persist(outPath, table); err != nil {
			report.TasksFailed++
			opts.logError("saving %s: %v", outPath, err)
		}

		done++
		opts.progress(done, total)
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// applyLines writes translated lines into the task's rows, best effort:
// line k goes to RowIndices[k], extra lines are discarded, and rows past
// the response length keep their previous cells. Rows outside RowIndices
// are never touched.
func applyLines(table *scenario.Table, task Task, lines []string) {
	for k, row := range task.RowIndices {
		if k >= len(lines) {
			break
		}
		table.SetCell(row, task.Col, strings.TrimSpace(lines[k]))
	}
}

// persist re-encodes the whole table to the output path, creating parent
// directories on demand.
func persist(outPath string, t *scenario.Table) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	codec, ok := scenario.ForPath(outPath)
	if !ok {
		return fmt.Errorf("no codec for %s", outPath)
	}
	return codec.Encode(outPath, t)
}

// relPath mirrors the input file's position under the output root.
func relPath(inputRoot, path string) string {
	rel, err := filepath.Rel(inputRoot, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}
