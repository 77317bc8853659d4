package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cdecl/internal/diag"
	"cdecl/internal/source"
)

type palette struct {
	err, warn, info, note, hint, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgCyan),
		hint:   color.New(color.FgGreen),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.hint, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Hints.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, f, opts.PathMode), start.Line, start.Col,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		clip(d.Message, opts.Width))

	if d.Code != diag.ObsTimings && f != nil && len(f.Content) > 0 && start.Line > 0 {
		snippet(w, f, d.Primary, start, opts, p)
	}

	if opts.ShowNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				displayPath(fs, nf, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if opts.ShowHints {
		for _, h := range d.Hints {
			fmt.Fprintf(w, "  %s %s\n", p.hint.Sprint("hint:"), diag.HintMessage(h))
		}
	}
}

// snippet prints the primary line with Context lines around it and a caret
// line under the span.
func snippet(w io.Writer, f *source.File, sp source.Span, start source.LineCol, opts PrettyOpts, p palette) {
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	if n := uint32(len(f.LineIdx)) + 1; last > n {
		last = n
	}
	gutterWidth := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := f.GetLine(line)
		if line != start.Line && strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), clip(text, opts.Width))
		if line != start.Line {
			continue
		}
		col := int(start.Col) - 1
		if col > len(text) {
			col = len(text)
		}
		length := int(sp.End) - int(sp.Start)
		if rest := len(text) - col; length > rest {
			length = rest
		}
		fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""),
			pad(text[:col]), p.caret.Sprint(underline(text[col:col+max(length, 0)])))
	}
}

// pad returns blanks as wide as prefix on screen; tabs are kept.
func pad(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// underline returns ^~~~ as wide as s, at least one caret.
func underline(s string) string {
	width := runewidth.StringWidth(s)
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "...")
}
