package diag

import (
	"cdecl/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic - одна находка проверки. Hints are alternative spellings the
// user probably meant; they render as "did you mean ...?".
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Hints    []string
}
