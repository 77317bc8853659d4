package diagfmt

import (
	"encoding/json"
	"io"

	"cdecl/internal/diag"
	"cdecl/internal/driver"
	"cdecl/internal/source"
)

// DeclJSON is one entry of a checked document.
type DeclJSON struct {
	Kind     string       `json:"kind"`
	Location LocationJSON `json:"location"`
	OK       bool         `json:"ok"`
	English  string       `json:"english,omitempty"`
	// Declaration is the entry spelled as C/C++.
	Declaration string `json:"declaration,omitempty"`
}

// FileJSON is one checked document.
type FileJSON struct {
	Path        string           `json:"path"`
	Lang        string           `json:"lang"`
	Input       string           `json:"input"`
	Cached      bool             `json:"cached,omitempty"`
	Typedefs    bool             `json:"typedefs,omitempty"`
	Decls       []DeclJSON       `json:"decls"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// ResultsOutput is the JSON form of a whole batch.
type ResultsOutput struct {
	Files    []FileJSON `json:"files"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
}

func buildFile(r *driver.FileResult, fs *source.FileSet, opts JSONOpts) FileJSON {
	out := FileJSON{
		Path:        r.Path,
		Lang:        r.Lang.Name(),
		Input:       r.Input.String(),
		Cached:      r.Cached,
		Decls:       make([]DeclJSON, 0, len(r.Decls)),
		Diagnostics: BuildDiagnosticsOutput(r.Bag, fs, opts).Diagnostics,
	}
	for _, d := range r.Decls {
		out.Decls = append(out.Decls, DeclJSON{
			Kind:        d.Kind.String(),
			Location:    makeLocation(d.Span, fs, opts.PathMode, opts.IncludePositions),
			OK:          d.OK,
			English:     d.English,
			Declaration: d.Declaration,
		})
	}
	return out
}

// BuildResultsOutput формирует JSON-вывод пакета без сериализации.
func BuildResultsOutput(b *driver.Batch, opts JSONOpts) ResultsOutput {
	out := ResultsOutput{Files: make([]FileJSON, 0, len(b.Typedefs)+len(b.Files))}
	add := func(rs []driver.FileResult, typedefs bool) {
		for i := range rs {
			f := buildFile(&rs[i], b.FileSet, opts)
			f.Typedefs = typedefs
			out.Files = append(out.Files, f)
			out.Errors += rs[i].Bag.Count(diag.SevError)
			out.Warnings += rs[i].Bag.Count(diag.SevWarning)
		}
	}
	add(b.Typedefs, true)
	add(b.Files, false)
	return out
}

// Results writes a batch as JSON.
func Results(w io.Writer, b *driver.Batch, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildResultsOutput(b, opts))
}
