package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"cdecl/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics one per line, sorted by
// position, with paths relative to the file set's base directory. Notes and
// hints follow their diagnostic when includeNotes is set.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatDiagnostics(diags, fs, includeNotes, true)
}

// FormatShortDiagnostics is FormatGoldenDiagnostics in emission order.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatDiagnostics(diags, fs, includeNotes, false)
}

func formatDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes, sorted bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	groups := make([][]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		if g := render(&diags[i], fs, includeNotes); len(g) > 0 {
			groups = append(groups, g)
		}
	}

	if sorted {
		sort.SliceStable(groups, func(i, j int) bool {
			di, dj := groups[i][0], groups[j][0]
			if di.Path != dj.Path {
				return di.Path < dj.Path
			}
			if di.Line != dj.Line {
				return di.Line < dj.Line
			}
			if di.Column != dj.Column {
				return di.Column < dj.Column
			}
			if di.Severity != dj.Severity {
				return di.Severity < dj.Severity
			}
			if di.Code != dj.Code {
				return di.Code < dj.Code
			}
			return di.Message < dj.Message
		})
	}

	var lines []string
	for _, g := range groups {
		for _, d := range g {
			lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message))
		}
	}
	return strings.Join(lines, "\n")
}

// render returns the diagnostic line followed by its notes and hints.
func render(d *Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	loc, ok := resolveSpan(fs, d.Primary)
	if !ok {
		return nil
	}
	out := []goldenDiagnostic{{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Path:     loc.Path,
		Line:     loc.Line,
		Column:   loc.Column,
		Message:  sanitizeMessage(d.Message),
	}}
	if !includeNotes {
		return out
	}
	for _, note := range d.Notes {
		nloc, nok := resolveSpan(fs, note.Span)
		if !nok {
			continue
		}
		out = append(out, goldenDiagnostic{
			Severity: "note",
			Code:     d.Code.ID(),
			Path:     nloc.Path,
			Line:     nloc.Line,
			Column:   nloc.Column,
			Message:  sanitizeMessage(note.Msg),
		})
	}
	for _, h := range d.Hints {
		hint := out[0]
		hint.Severity = "hint"
		hint.Message = HintMessage(h)
		out = append(out, hint)
	}
	return out
}

// HintMessage phrases a hint the way every output format shows it.
func HintMessage(hint string) string {
	return fmt.Sprintf("did you mean %s?", hint)
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) (resolvedSpan, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return resolvedSpan{}, false
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   filepath.ToSlash(file.FormatPath("relative", fs.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
