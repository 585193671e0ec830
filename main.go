// scenkit — scenario table translation kit: translates multi-language
// scenario tables (CSV/XLSX) with AI backends, column by column.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/scenkit/scenkit/backend"
	"github.com/scenkit/scenkit/config"
	"github.com/scenkit/scenkit/glossary"
	"github.com/scenkit/scenkit/i18n"
	"github.com/scenkit/scenkit/prompt"
	"github.com/scenkit/scenkit/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ---------------------------------------------------------------------------
// Log helpers
// ---------------------------------------------------------------------------

var (
	tagInfo  = color.New(color.FgBlue).Sprint("[INFO]")
	tagOK    = color.New(color.FgGreen).Sprint("[OK]")
	tagWarn  = color.New(color.FgYellow).Sprint("[WARN]")
	tagError = color.New(color.FgRed).Sprint("[ERROR]")
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", tagInfo, fmt.Sprintf(format, args...))
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", tagOK, fmt.Sprintf(format, args...))
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", tagWarn, fmt.Sprintf(format, args...))
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", tagError, fmt.Sprintf(format, args...))
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scenkit",
		Short: "Scenario table translation kit",
		Long: `scenkit — translates multi-language scenario tables with AI.

A scenario table is a CSV or XLSX file whose header names one
source-language column followed by target-language columns:

  ru,en,jp
  Привет!,Hello!,こんにちは！

Each (file, language) pair is one translation task sent to the backend
as a whole; results are written row-aligned to a mirrored output tree
(<input>_translated), re-saved after every task so progress survives
interruption.

Backends:
  command     pipe the prompt to an external command's stdin (default)
  gemini      Google Gemini API (GEMINI_API_KEY)
  openai      OpenAI API (OPENAI_API_KEY)
  anthropic   Anthropic API (ANTHROPIC_API_KEY)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTranslateCmd(),
		newScanCmd(),
		newPromptsCmd(),
		newVersionCmd(),
	)
	return root
}

// ---------------------------------------------------------------------------
// translate command
// ---------------------------------------------------------------------------

type translateArgs struct {
	path         string
	langs        string
	promptName   string
	promptsDir   string
	glossaryPath string
	sourceColumn string
	resume       bool
	dryRun       bool

	provider string
	command  string
	apiKey   string
	model    string
	timeout  time.Duration
}

func newTranslateCmd() *cobra.Command {
	var a translateArgs

	cmd := &cobra.Command{
		Use:   "translate [path]",
		Short: "Translate scenario tables using an AI backend",
		Long: `Translate scenario tables using an AI backend.

Path may be a single table file or a directory walked recursively.
Output mirrors the input layout under <input>_translated; every
completed task is saved immediately, so an interrupted run keeps all
finished work. With --resume only rows whose target cell is still
empty are sent.

Examples:
  # Pipe prompts to a local gemini CLI (the default backend)
  scenkit translate scenarios --command "gemini"

  # Translate only English and Japanese columns via the Gemini API
  scenkit translate scenarios --provider gemini --lang en,jp

  # Finish a previously interrupted run
  scenkit translate scenarios_translated --resume --provider openai`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.path = "scenarios"
			if len(args) > 0 {
				a.path = args[0]
			}
			return runTranslate(a, cmd.Flags().Changed("resume"))
		},
	}

	cmd.Flags().StringVar(&a.langs, "lang", "", "Target languages (comma-separated, default: all columns after the source)")
	cmd.Flags().StringVar(&a.promptName, "prompt", "", "Prompt template name (default \"default\")")
	cmd.Flags().StringVar(&a.promptsDir, "prompts-dir", "", "Prompt template directory (default \"prompts\")")
	cmd.Flags().StringVar(&a.glossaryPath, "glossary", "", "Glossary YAML file (language -> term -> translation)")
	cmd.Flags().StringVar(&a.sourceColumn, "source-column", "", "Source-language header name (default \"ru\")")
	cmd.Flags().BoolVar(&a.resume, "resume", false, "Only translate rows whose target cell is empty")
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "Show the workload without calling any backend")

	cmd.Flags().StringVar(&a.provider, "provider", "", "Backend: command, gemini, openai, anthropic (default \"command\")")
	cmd.Flags().StringVar(&a.command, "command", "", "Command to pipe prompts to (command backend)")
	cmd.Flags().StringVar(&a.apiKey, "api-key", "", "API key (or provider env var)")
	cmd.Flags().StringVar(&a.model, "model", "", "Model name (API backends)")
	cmd.Flags().DurationVar(&a.timeout, "timeout", 0, "Per-task backend timeout (0 = none)")

	_ = cmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"command\tPipe prompt to an external command",
			"gemini\tGoogle Gemini API",
			"openai\tOpenAI API",
			"anthropic\tAnthropic API",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// resolveConfig merges built-in defaults, .scenkit.yaml from the input
// root directory, and command-line flags, in that order.
func resolveConfig(a translateArgs, resumeFlagSet bool) (*config.File, error) {
	inputRoot, _ := translate.Roots(a.path)
	fileCfg, err := config.Load(inputRoot)
	if err != nil {
		return nil, err
	}

	cfg := config.Defaults().Merge(fileCfg)

	if a.sourceColumn != "" {
		cfg.SourceColumn = a.sourceColumn
	}
	if a.langs != "" {
		cfg.Languages = splitLangs(a.langs)
	}
	if a.promptName != "" {
		cfg.Prompt = a.promptName
	}
	if a.promptsDir != "" {
		cfg.PromptsDir = a.promptsDir
	}
	if a.glossaryPath != "" {
		cfg.Glossary = a.glossaryPath
	}
	if resumeFlagSet {
		cfg.Resume = &a.resume
	}
	if a.provider != "" {
		cfg.Provider = a.provider
	}
	if a.model != "" {
		cfg.Model = a.model
	}
	if a.command != "" {
		cfg.Command = strings.Fields(a.command)
	}
	return cfg, nil
}

func runTranslate(a translateArgs, resumeFlagSet bool) error {
	cfg, err := resolveConfig(a, resumeFlagSet)
	if err != nil {
		return err
	}
	resume := cfg.Resume != nil && *cfg.Resume

	if a.dryRun {
		return runScanReport(a.path, cfg, resume)
	}

	store, err := prompt.NewStore(cfg.PromptsDir)
	if err != nil {
		return err
	}
	template, err := store.Load(cfg.Prompt)
	if err != nil {
		return err
	}

	glos, err := glossary.Load(cfg.Glossary)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	be, err := backend.New(ctx, backend.Options{
		Provider: cfg.Provider,
		Command:  cfg.Command,
		APIKey:   a.apiKey,
		Model:    cfg.Model,
		Timeout:  a.timeout,
	})
	if err != nil {
		return err
	}

	// Interrupt takes effect between tasks; finished tasks are already
	// on disk.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr)
		logWarning(i18n.T("Interrupted, progress up to the last completed task is saved"))
		cancel()
	}()

	_, outputRoot := translate.Roots(a.path)
	logInfo("Source: %s", a.path)
	logInfo("Output: %s", outputRoot)
	if len(cfg.Languages) > 0 {
		logInfo("Target: %s", strings.Join(cfg.Languages, ", "))
	} else {
		logInfo("Target: all detected")
	}
	logInfo("Backend: %s", cfg.Provider)

	var bar *progressbar.ProgressBar
	clearBar := func() {
		if bar != nil {
			_ = bar.Clear()
		}
	}

	report, err := translate.Run(ctx, a.path, translate.Options{
		SourceColumn: cfg.SourceColumn,
		Languages:    cfg.Languages,
		Resume:       resume,
		Template:     template,
		Backend:      be,
		Glossary:     glos,
		OnLog: func(format string, args ...any) {
			clearBar()
			logInfo(format, args...)
		},
		OnError: func(format string, args ...any) {
			clearBar()
			logError(format, args...)
		},
		OnProgress: func(done, total int) {
			if bar == nil {
				bar = newProgressBar(total)
			}
			_ = bar.Set(done)
		},
	})
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		if ctx.Err() != nil {
			printSummary(report)
			return nil
		}
		return err
	}

	if report.TasksTotal == 0 {
		logSuccess(i18n.T("Nothing to translate"))
		return nil
	}
	printSummary(report)
	return nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]tasks[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func printSummary(report *translate.Report) {
	if report == nil {
		return
	}
	if report.TasksFailed == 0 {
		logSuccess(i18n.T("Translation complete"))
	} else {
		logWarning(i18n.N("Completed with %d error", "Completed with %d errors", report.TasksFailed), report.TasksFailed)
	}
	logInfo(i18n.T("Time elapsed: %s"), report.Elapsed.Round(10*time.Millisecond))
	logInfo(i18n.T("Total operations: %d"), report.TasksTotal)
}

// ---------------------------------------------------------------------------
// scan command
// ---------------------------------------------------------------------------

func newScanCmd() *cobra.Command {
	var (
		langs        string
		sourceColumn string
		resume       bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Show pending translation work without calling any backend",
		Long: `Scan scenario tables and report the workload: one line per
(file, language) task with the number of rows it would translate.
Purely read-only, safe to run repeatedly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scenarios"
			if len(args) > 0 {
				path = args[0]
			}
			inputRoot, _ := translate.Roots(path)
			fileCfg, err := config.Load(inputRoot)
			if err != nil {
				return err
			}
			cfg := config.Defaults().Merge(fileCfg)
			if sourceColumn != "" {
				cfg.SourceColumn = sourceColumn
			}
			if langs != "" {
				cfg.Languages = splitLangs(langs)
			}
			return runScanReport(path, cfg, resume)
		},
	}

	cmd.Flags().StringVar(&langs, "lang", "", "Target languages (comma-separated)")
	cmd.Flags().StringVar(&sourceColumn, "source-column", "", "Source-language header name (default \"ru\")")
	cmd.Flags().BoolVar(&resume, "resume", false, "Count only rows whose target cell is empty")
	return cmd
}

func runScanReport(path string, cfg *config.File, resume bool) error {
	logInfo(i18n.T("Scanning files to calculate workload..."))

	wl, err := translate.Discover(path, translate.ScanOptions{
		SourceColumn: cfg.SourceColumn,
		Languages:    cfg.Languages,
		Resume:       resume,
	})
	if err != nil {
		return err
	}

	inputRoot, _ := translate.Roots(path)
	for _, task := range wl.Tasks {
		rel, relErr := filepath.Rel(inputRoot, task.Path)
		if relErr != nil {
			rel = task.Path
		}
		n := len(task.RowIndices)
		logInfo("%s -> %s: "+i18n.N("%d row", "%d rows", n), rel, task.Lang, n)
	}

	if wl.FilesSkipped > 0 {
		logWarning("%d file(s) skipped (unreadable or no %q column)", wl.FilesSkipped, cfg.SourceColumn)
	}
	if wl.TasksSkipped > 0 {
		logInfo("%d task(s) already complete", wl.TasksSkipped)
	}
	if len(wl.Tasks) == 0 {
		logSuccess(i18n.T("Nothing to translate"))
		return nil
	}
	logInfo("Files: %d, tasks: %d", wl.FilesScanned, len(wl.Tasks))
	return nil
}

// ---------------------------------------------------------------------------
// prompts command
// ---------------------------------------------------------------------------

func newPromptsCmd() *cobra.Command {
	var promptsDir string

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Manage prompt templates",
		Long: `Manage the named prompt templates used to build translation
requests. Templates are plain-text files with {target_lang}, {text},
and optional {glossary} placeholders.`,
	}
	cmd.PersistentFlags().StringVar(&promptsDir, "prompts-dir", config.DefaultPromptsDir, "Prompt template directory")

	list := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := prompt.NewStore(promptsDir)
			if err != nil {
				return err
			}
			names, err := store.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := prompt.NewStore(promptsDir)
			if err != nil {
				return err
			}
			content, err := store.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Println(content)
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a template from stdin",
		Long: `Create a template, reading its text from stdin until EOF.
Use {target_lang} and {text} placeholders; {glossary} is optional.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := prompt.NewStore(promptsDir)
			if err != nil {
				return err
			}
			content, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			path, err := store.Save(args[0], string(content))
			if err != nil {
				return err
			}
			logSuccess("Saved %s", path)
			return nil
		},
	}

	cmd.AddCommand(list, show, create)
	return cmd
}

// ---------------------------------------------------------------------------
// version command
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scenkit %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// splitLangs parses a comma-separated language list, dropping empties.
func splitLangs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	i18n.Init("")

	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}
