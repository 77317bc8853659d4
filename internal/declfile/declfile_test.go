package declfile

import (
	"errors"
	"strings"
	"testing"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/sema"
	"cdecl/internal/source"
	"cdecl/internal/typedefs"
)

func load(t *testing.T, text string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.yaml", []byte(text)))
}

type built struct {
	tree  *ast.Tree
	roots [][]ast.NodeID
	bag   *diag.Bag
	ok    bool
}

func buildAll(t *testing.T, text string, lang dialect.Lang) (*Document, built) {
	t.Helper()
	doc, err := Parse(load(t, text))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.HasLang {
		lang = doc.Lang
	}
	out := built{tree: ast.NewTree(0), bag: diag.NewBag(16), ok: true}
	b := &Builder{
		Doc:      doc,
		Context:  dialect.NewContext(lang),
		Typedefs: typedefs.NewPredefined(),
		Reporter: diag.BagReporter{Bag: out.bag},
	}
	for _, e := range doc.Entries() {
		roots, ok := b.Build(out.tree, e)
		out.ok = out.ok && ok
		out.roots = append(out.roots, roots)
	}
	return doc, out
}

func TestBuildDocument(t *testing.T) {
	const text = `
lang: c11
decls:
  - name: p
    pointer: {to: {typedef: size_t}}
  - list:
      - {name: a, builtin: [unsigned, long, long]}
      - name: b
        specs: [const]
        pointer: {to: {builtin: char}}
  - cast: c
    name: q
    to: {pointer: {to: {builtin: [void]}}}
  - name: main
    function:
      returns: {builtin: [int]}
      params:
        - {builtin: [int]}
        - array: {of: {pointer: {to: {builtin: [char]}}}}
`
	doc, b := buildAll(t, text, dialect.C17)
	if !b.ok {
		t.Fatalf("build failed: %v", b.bag.Items())
	}
	if doc.Lang != dialect.C11 {
		t.Fatalf("Lang = %v, want C11", doc.Lang)
	}
	kinds := []EntryKind{EntryDecl, EntryList, EntryCast, EntryDecl}
	for i, e := range doc.Decls {
		if e.Kind != kinds[i] {
			t.Errorf("entry %d kind = %v, want %v", i, e.Kind, kinds[i])
		}
	}

	p := b.tree.Get(b.roots[0][0])
	if p.Kind != ast.KindPointer || p.Name.Full() != "p" {
		t.Fatalf("p = %v %q", p.Kind, p.Name.Full())
	}
	if to := b.tree.Get(p.Of()); to.Kind != ast.KindTypedef {
		t.Fatalf("p points to %v, want typedef", to.Kind)
	}

	if len(b.roots[1]) != 2 {
		t.Fatalf("list has %d roots", len(b.roots[1]))
	}
	a := b.tree.Get(b.roots[1][0])
	if !a.Type.Base.HasAll(ctype.BaseLongLong.With(ctype.BaseUnsigned)) {
		t.Fatalf("a type = %v, want unsigned long long", a.Type)
	}
	if bp := b.tree.Get(b.roots[1][1]); !bp.Type.Has(ctype.QualConst) {
		t.Fatalf("b is not const: %v", bp.Type)
	}

	if c := b.tree.Get(b.roots[2][0]); c.Kind != ast.KindCast || c.Name.Full() != "q" {
		t.Fatalf("cast = %v %q", c.Kind, c.Name.Full())
	}

	main := b.tree.Get(b.roots[3][0])
	if main.Kind != ast.KindFunction || len(main.Params()) != 2 {
		t.Fatalf("main = %v with %d params", main.Kind, len(main.Params()))
	}
	if pn := b.tree.Get(main.Params()[1]); pn.Parent != b.roots[3][0] {
		t.Fatalf("parameter parent = %d", pn.Parent)
	}
}

func TestTypedefSection(t *testing.T) {
	const text = `
typedefs:
  - name: T
    type: {pointer: {to: {builtin: [int]}}}
decls:
  - {name: x, builtin: [int]}
`
	doc, b := buildAll(t, text, dialect.C17)
	if !b.ok {
		t.Fatalf("build failed: %v", b.bag.Items())
	}
	if len(doc.Typedefs) != 1 || doc.Typedefs[0].Kind != EntryTypedef {
		t.Fatalf("typedefs = %v", doc.Typedefs)
	}
	td := b.tree.Get(b.roots[0][0])
	if !td.Type.Has(ctype.StoreTypedef) || td.Name.Full() != "T" {
		t.Fatalf("typedef root = %v %q", td.Type, td.Name.Full())
	}
}

func TestInputKey(t *testing.T) {
	doc, err := Parse(load(t, "input: english\ndecls:\n  - {name: x, builtin: [int]}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !doc.HasInput || doc.Input != sema.FromEnglish {
		t.Fatalf("Input = %v, %v", doc.Input, doc.HasInput)
	}
	doc, err = Parse(load(t, "decls:\n  - {name: x, builtin: [int]}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.HasInput {
		t.Fatal("HasInput without an input key")
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if _, err := Parse(load(t, "")); !errors.Is(err, ErrNoDecls) {
			t.Fatalf("err = %v, want ErrNoDecls", err)
		}
	})
	t.Run("lang only", func(t *testing.T) {
		if _, err := Parse(load(t, "lang: c99\n")); !errors.Is(err, ErrNoDecls) {
			t.Fatalf("err = %v, want ErrNoDecls", err)
		}
	})
	t.Run("unknown lang", func(t *testing.T) {
		_, err := Parse(load(t, "lang: c42\ndecls: []\n"))
		var de *Error
		if !errors.As(err, &de) || de.Code != diag.DclUnknownLang {
			t.Fatalf("err = %v, want DclUnknownLang", err)
		}
	})
	t.Run("unknown top-level key", func(t *testing.T) {
		_, err := Parse(load(t, "decl: []\n"))
		var de *Error
		if !errors.As(err, &de) || de.Code != diag.DclUnknownKey {
			t.Fatalf("err = %v, want DclUnknownKey", err)
		}
	})
	t.Run("bad input", func(t *testing.T) {
		_, err := Parse(load(t, "input: klingon\ndecls: []\n"))
		var de *Error
		if !errors.As(err, &de) || de.Code != diag.DclBadValue {
			t.Fatalf("err = %v, want DclBadValue", err)
		}
	})
	t.Run("not yaml", func(t *testing.T) {
		if _, err := Parse(load(t, "decls: [\n")); err == nil {
			t.Fatal("malformed yaml accepted")
		}
	})
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		decl string
		code diag.Code
		at   string
	}{
		{"conflict", "{name: x, builtin: [int, int]}", diag.TypConflict, "int]"},
		{"unknown word", "{name: x, builtin: [integer]}", diag.DclUnknownType, "integer"},
		{"unknown key", "{name: x, builtin: [int], size: 3}", diag.DclUnknownKey, "size"},
		{"unknown typedef", "{name: x, typedef: my_t}", diag.SemUnknownTypedef, "my_t"},
		{"two kinds", "{name: x, builtin: [int], pointer: {to: {builtin: [int]}}}", diag.DclBadValue, "pointer"},
		{"no kind", "{specs: [const]}", diag.DclMissingKey, "{specs"},
		{"missing to", "{name: p, pointer: {}}", diag.DclMissingKey, "{}"},
		{"bad operator", "{operator: {op: '**', returns: {builtin: [int]}}}", diag.DclBadValue, "'**'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "decls:\n  - " + tt.decl + "\n"
			_, b := buildAll(t, text, dialect.CPP17)
			if b.ok {
				t.Fatal("build succeeded")
			}
			items := b.bag.Items()
			if len(items) == 0 || items[0].Code != tt.code {
				t.Fatalf("diagnostics = %v, want %v", items, tt.code)
			}
			if want := uint32(strings.Index(text, tt.at)); items[0].Primary.Start != want {
				t.Fatalf("span starts at %d, want %d", items[0].Primary.Start, want)
			}
		})
	}
}
