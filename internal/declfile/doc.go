// Package declfile reads declaration documents: YAML files that describe
// declaration trees directly, one mapping per node.
//
//	lang: c17
//	input: native
//	typedefs:
//	  - name: T
//	    type: {builtin: [unsigned, long]}
//	decls:
//	  - name: x
//	    pointer: {to: {typedef: T}}
//	  - list:
//	      - {name: a, builtin: [int]}
//	      - {name: b, pointer: {to: {builtin: [int]}}}
//	  - cast: static
//	    name: p
//	    to: {pointer: {to: {builtin: [char]}}}
package declfile

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"gopkg.in/yaml.v3"

	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/sema"
	"cdecl/internal/source"
)

// ErrNoDecls is returned for a document without declarations or typedefs.
var ErrNoDecls = errors.New("no declarations")

// Error is a document-level problem with a location.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// EntryKind says how an entry is checked.
type EntryKind uint8

const (
	EntryDecl EntryKind = iota
	// EntryList is a declaration statement with several declarators.
	EntryList
	EntryCast
	// EntryTypedef comes from the typedefs section.
	EntryTypedef
)

func (k EntryKind) String() string {
	switch k {
	case EntryList:
		return "list"
	case EntryCast:
		return "cast"
	case EntryTypedef:
		return "typedef"
	}
	return "decl"
}

// Entry is one not yet built statement of a document.
type Entry struct {
	Kind EntryKind
	Span source.Span
	node *yaml.Node
}

// Document is a parsed declaration document. Entries are built into trees
// one at a time, so that a typedef declared by one entry is visible to the
// next.
type Document struct {
	File *source.File
	// Lang is the dialect the document asks for; zero when it does not.
	Lang    dialect.Lang
	HasLang bool
	// Input says whether the trees stand for C/C++ or for English the
	// user typed; zero when the document does not say.
	Input    sema.Input
	HasInput bool
	Typedefs []Entry
	Decls    []Entry
}

// Entries returns typedefs first, then declarations, in document order.
func (d *Document) Entries() []Entry {
	out := make([]Entry, 0, len(d.Typedefs)+len(d.Decls))
	out = append(out, d.Typedefs...)
	return append(out, d.Decls...)
}

// Parse reads the top level of f. Per-node problems are reported later, by
// Build.
func Parse(f *source.File) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(f.Content, &root); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	doc := &Document{File: f}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, fmt.Errorf("%s: %w", f.Path, ErrNoDecls)
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, doc.errorf(diag.DclSyntax, top, "document must be a mapping")
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		var err error
		switch key.Value {
		case "lang":
			err = doc.parseLang(val)
		case "input":
			err = doc.parseInput(val)
		case "typedefs":
			err = doc.parseEntries(val, EntryTypedef, &doc.Typedefs)
		case "decls":
			err = doc.parseEntries(val, EntryDecl, &doc.Decls)
		default:
			err = doc.errorf(diag.DclUnknownKey, key, "unknown key %q", key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if len(doc.Typedefs) == 0 && len(doc.Decls) == 0 {
		return nil, fmt.Errorf("%s: %w", f.Path, ErrNoDecls)
	}
	return doc, nil
}

func (d *Document) parseLang(val *yaml.Node) error {
	if val.Kind != yaml.ScalarNode {
		return d.errorf(diag.DclBadValue, val, "lang must be a name")
	}
	l, ok := dialect.Find(val.Value)
	if !ok {
		return d.errorf(diag.DclUnknownLang, val, "unknown language %q", val.Value)
	}
	d.Lang, d.HasLang = l, true
	return nil
}

func (d *Document) parseInput(val *yaml.Node) error {
	in, ok := sema.ParseInput(val.Value)
	if val.Kind != yaml.ScalarNode || !ok {
		return d.errorf(diag.DclBadValue, val, `input must be "native" or "english"`)
	}
	d.Input, d.HasInput = in, true
	return nil
}

func (d *Document) parseEntries(val *yaml.Node, kind EntryKind, out *[]Entry) error {
	if val.Kind != yaml.SequenceNode {
		return d.errorf(diag.DclBadValue, val, "expected a list of declarations")
	}
	for _, n := range val.Content {
		if n.Kind != yaml.MappingNode {
			return d.errorf(diag.DclBadValue, n, "declaration must be a mapping")
		}
		k := kind
		if kind == EntryDecl {
			switch {
			case lookup(n, "list") != nil:
				k = EntryList
			case lookup(n, "cast") != nil:
				k = EntryCast
			}
		}
		*out = append(*out, Entry{Kind: k, Span: d.span(n), node: n})
	}
	return nil
}

func (d *Document) errorf(code diag.Code, n *yaml.Node, format string, args ...any) *Error {
	return &Error{Code: code, Span: d.span(n), Msg: fmt.Sprintf(format, args...)}
}

// span covers a scalar's text, or the first character of anything else.
func (d *Document) span(n *yaml.Node) source.Span {
	if n == nil || d.File == nil {
		return source.Span{}
	}
	length := 1
	if n.Kind == yaml.ScalarNode && n.Style == 0 && len(n.Value) > 0 {
		length = len(n.Value)
	}
	pos := source.LineCol{Line: u32(n.Line), Col: u32(n.Column)}
	return d.File.SpanAt(pos, u32(length))
}

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("declfile: position overflow: %w", err))
	}
	return v
}

// lookup returns the value of key in mapping m.
func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
