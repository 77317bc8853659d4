package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cdecl/internal/diag"
	"cdecl/internal/diagfmt"
	"cdecl/internal/driver"
	"cdecl/internal/observ"
	"cdecl/internal/sema"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.yaml|directory>...",
	Short: "Check declaration documents against a dialect",
	Long: `Check every declaration of the given documents, or of all *.yaml and *.yml
files within the given directories, and report what the dialect rejects`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, args, false)
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain [flags] <file.yaml|directory>...",
	Short: "Explain declaration documents in English or as C/C++",
	Long: `Check the given documents and print every accepted declaration on the other
side: in English for native documents, as a C/C++ declaration for documents
with "input: english". Diagnostics go to stderr`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, args, true)
	},
}

// init registers the flags shared by check and explain.
func init() {
	for _, cmd := range []*cobra.Command{checkCmd, explainCmd} {
		cmd.Flags().String("format", "", "output format (pretty|short|json)")
		cmd.Flags().Bool("no-warnings", false, "skip the warning pass")
		cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
		cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
		cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
		cmd.Flags().Bool("no-hints", false, "omit \"did you mean\" hints")
		cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
		cmd.Flags().StringSlice("exclude", nil, "glob patterns of documents to skip")
		cmd.Flags().StringSlice("typedefs", nil, "extra typedef documents, checked before the others")
		cmd.Flags().Bool("cache", false, "reuse results from the disk cache")
		cmd.Flags().Bool("drop-cache", false, "clear the disk cache before checking")
		cmd.Flags().String("ui", "", "progress UI (auto|on|off)")
		cmd.Flags().String("input", "", "what documents without an input key stand for (native|english)")
	}
}

type batchFlags struct {
	format           string
	noWarnings       bool
	warningsAsErrors bool
	jobs             int
	withNotes        bool
	noHints          bool
	fullPath         bool
	typedefs         []string
	exclude          []string
	cache            bool
	dropCache        bool
	ui               progressMode
	input            sema.Input
}

func readBatchFlags(cmd *cobra.Command, s settings) (batchFlags, error) {
	var f batchFlags
	var err error
	fl := cmd.Flags()
	if f.format, err = fl.GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.format == "" {
		f.format = s.cfg.Output.Format
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format %q (must be pretty, short or json)", f.format)
	}
	if f.noWarnings, err = fl.GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = fl.GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	f.warningsAsErrors = f.warningsAsErrors || (s.cfg.Check.WarningsAsErrors && !fl.Changed("warnings-as-errors"))
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.jobs, err = fl.GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.withNotes, err = fl.GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.noHints, err = fl.GetBool("no-hints"); err != nil {
		return f, fmt.Errorf("failed to get no-hints flag: %w", err)
	}
	if f.fullPath, err = fl.GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.typedefs, err = fl.GetStringSlice("typedefs"); err != nil {
		return f, fmt.Errorf("failed to get typedefs flag: %w", err)
	}
	if f.exclude, err = fl.GetStringSlice("exclude"); err != nil {
		return f, fmt.Errorf("failed to get exclude flag: %w", err)
	}
	f.exclude = append(append([]string(nil), s.cfg.Check.Exclude...), f.exclude...)
	if f.cache, err = fl.GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	f.cache = f.cache || s.cfg.Cache.Enabled
	if f.dropCache, err = fl.GetBool("drop-cache"); err != nil {
		return f, fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	uiValue, err := fl.GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if uiValue == "" {
		uiValue = s.cfg.Output.UI
	}
	if f.ui, err = parseProgressMode(uiValue); err != nil {
		return f, err
	}
	inputValue, err := fl.GetString("input")
	if err != nil {
		return f, fmt.Errorf("failed to get input flag: %w", err)
	}
	if inputValue == "" {
		inputValue = s.cfg.Check.Input
	}
	var ok bool
	if f.input, ok = sema.ParseInput(inputValue); !ok {
		return f, fmt.Errorf("invalid --input value %q (expected native|english)", inputValue)
	}
	return f, nil
}

// runBatch executes check and explain: it checks the documents, prints the
// results in the chosen format and fails when any document has errors.
func runBatch(cmd *cobra.Command, args []string, explainOnly bool) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	f, err := readBatchFlags(cmd, s)
	if err != nil {
		return err
	}

	opts := &driver.Options{
		Lang:             s.lang,
		Input:            f.input,
		Warnings:         s.cfg.Check.Warnings && !f.noWarnings,
		WarningsAsErrors: f.warningsAsErrors,
		MaxDiagnostics:   s.cfg.Check.MaxDiagnostics,
		Explain:          s.cfg.Output.Explain || explainOnly,
		EnableTimings:    s.timings,
		Typedefs:         append(append([]string(nil), s.cfg.Typedefs.Files...), f.typedefs...),
		Jobs:             f.jobs,
	}
	if f.cache || f.dropCache {
		cache, err := driver.OpenCache("cdecl", s.cfg.Cache.Dir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if f.dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to drop cache: %w", err)
			}
		}
		if f.cache {
			opts.Cache = cache
		}
	}

	files, err := driver.ListDeclFiles(args)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if files, err = driver.ExcludeFiles(files, f.exclude); err != nil {
		return err
	}

	ctx := context.Background()
	var batch *driver.Batch
	view := progressView{
		mode:      f.ui,
		format:    f.format,
		quiet:     s.quiet,
		files:     len(files),
		stderrTTY: isTerminal(os.Stderr),
	}
	if view.enabled() {
		batch, err = runCheckWithUI(ctx, "checking declarations", files, opts)
	} else {
		batch, err = driver.CheckFiles(ctx, files, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	pathMode := diagfmt.PathModeAuto
	if f.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch {
	case f.format == "json":
		err = diagfmt.Results(out, batch, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     f.withNotes,
			IncludeHints:     !f.noHints,
		})
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	case explainOnly:
		printDiagnostics(errOut, batch, f, s, pathMode)
		printExplanations(out, batch, false)
	default:
		printDiagnostics(out, batch, f, s, pathMode)
		if opts.Explain && !s.quiet {
			printExplanations(out, batch, true)
		}
	}

	if s.timings && f.format != "json" {
		printTimings(errOut, batch)
	}
	if f.format != "json" && !s.quiet {
		printSummary(errOut, batch)
	}
	if batch.HasErrors() {
		return fmt.Errorf("declarations rejected")
	}
	return nil
}

func eachResult(b *driver.Batch, fn func(r *driver.FileResult)) {
	for i := range b.Typedefs {
		fn(&b.Typedefs[i])
	}
	for i := range b.Files {
		fn(&b.Files[i])
	}
}

func printDiagnostics(w io.Writer, b *driver.Batch, f batchFlags, s settings, pathMode diagfmt.PathMode) {
	eachResult(b, func(r *driver.FileResult) {
		if r.Bag.Len() == 0 {
			return
		}
		r.Bag.Sort()
		if f.format == "short" {
			if text := diag.FormatShortDiagnostics(r.Bag.Items(), b.FileSet, f.withNotes || !f.noHints); text != "" {
				fmt.Fprintln(w, text)
			}
			return
		}
		diagfmt.Pretty(w, r.Bag, b.FileSet, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: f.withNotes,
			ShowHints: !f.noHints,
		})
		fmt.Fprintln(w)
	})
}

// printExplanations prints every accepted declaration translated: English
// for native documents, C/C++ for English ones. With locations each line is
// prefixed by path:line.
func printExplanations(w io.Writer, b *driver.Batch, locations bool) {
	for i := range b.Files {
		r := &b.Files[i]
		for _, d := range r.Decls {
			text := d.Translation(r.Input)
			if !d.OK || text == "" {
				continue
			}
			if !locations {
				fmt.Fprintln(w, text)
				continue
			}
			start, _ := b.FileSet.Resolve(d.Span)
			for _, line := range strings.Split(text, "\n") {
				fmt.Fprintf(w, "%s:%d: %s\n", r.Path, start.Line, line)
			}
		}
	}
}

func printTimings(w io.Writer, b *driver.Batch) {
	var total observ.Report
	eachResult(b, func(r *driver.FileResult) {
		if r.Timing != nil {
			total.Merge(*r.Timing)
		}
	})
	if len(total.Phases) > 0 {
		fmt.Fprint(w, total.Summary())
	}
}

func printSummary(w io.Writer, b *driver.Batch) {
	var decls, accepted, errs, warns, cached int
	eachResult(b, func(r *driver.FileResult) {
		decls += len(r.Decls)
		accepted += r.Accepted()
		errs += r.Bag.Count(diag.SevError)
		warns += r.Bag.Count(diag.SevWarning)
		if r.Cached {
			cached++
		}
	})
	fmt.Fprintf(w, "%d documents, %d of %d declarations accepted, %d errors, %d warnings",
		len(b.Typedefs)+len(b.Files), accepted, decls, errs, warns)
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	fmt.Fprintln(w)
}
