// Package diag defines the diagnostic model shared by the checker, the
// declaration-document reader and the driver.
//
// A Diagnostic carries a Severity, a Code (numbered by range: TYP type-flag
// conflicts, LNG dialect violations, SEM ill-formed declarations, NAM names
// and deprecations, DCL malformed documents, IO files and cache), a message,
// the primary span, optional notes and optional hints. A hint is an
// alternative spelling the user probably meant and renders as
// "did you mean ...?".
//
// Producers emit through a Reporter, usually via ReportBuilder:
//
//	diag.ReportError(r, diag.SemReference, sp, "reference to void is illegal").
//		WithHint(`"pointer to void"`).
//		Emit()
//
// BagReporter collects into a Bag (limit, Sort, Dedup, Filter);
// DedupReporter drops repeats; CountingReporter counts by severity;
// PromoteReporter turns warnings into errors.
//
// Rendering lives in internal/diagfmt. The single-line golden/short form is
// here so that tests of every package can use it.
package diag
