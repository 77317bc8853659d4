package diag

import "cdecl/internal/source"

// Reporter - минимальный контракт получения диагностик от проверок.
// Реализации: BagReporter (кладёт в Bag), DedupReporter, CountingReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, hints []string)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, primary, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, primary, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, primary, msg)
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevInfo, code, primary, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// WithHint appends a "did you mean" suggestion; empty hints are dropped.
func (b *ReportBuilder) WithHint(hint string) *ReportBuilder {
	if b == nil || hint == "" {
		return b
	}
	b.diag = b.diag.WithHint(hint)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Primary, b.diag.Message, b.diag.Notes, b.diag.Hints)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter - адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, hints []string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes, Hints: hints,
	})
}

// CountingReporter forwards to Next and counts what passes by per severity.
type CountingReporter struct {
	Next     Reporter
	Errors   int
	Warnings int
}

func (r *CountingReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, hints []string) {
	switch sev {
	case SevError:
		r.Errors++
	case SevWarning:
		r.Warnings++
	}
	if r.Next != nil {
		r.Next.Report(code, sev, primary, msg, notes, hints)
	}
}

// PromoteReporter reports warnings as errors (--warnings-as-errors).
type PromoteReporter struct{ Next Reporter }

func (r PromoteReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, hints []string) {
	if sev == SevWarning {
		sev = SevError
	}
	if r.Next != nil {
		r.Next.Report(code, sev, primary, msg, notes, hints)
	}
}
