package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/sema"
)

func writeDoc(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		if d.Code != diag.ObsTimings {
			out = append(out, d.Code)
		}
	}
	return out
}

func checkOne(t *testing.T, text string, opts *Options) FileResult {
	t.Helper()
	path := writeDoc(t, t.TempDir(), "doc.yaml", text)
	batch, err := CheckFiles(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if len(batch.Files) != 1 {
		t.Fatalf("got %d results", len(batch.Files))
	}
	return batch.Files[0]
}

func TestCheckFilesExplains(t *testing.T) {
	const text = `
lang: c11
typedefs:
  - name: T
    type: {builtin: [unsigned, long]}
decls:
  - name: p
    pointer: {to: {typedef: T}}
  - list:
      - {name: a, builtin: [int]}
      - name: b
        pointer: {to: {builtin: [int]}}
`
	res := checkOne(t, text, &Options{Lang: dialect.C17, Explain: true, Warnings: true})
	if got := codes(res.Bag); len(got) != 0 {
		t.Fatalf("diagnostics = %v", res.Bag.Items())
	}
	if res.Lang != dialect.C11 {
		t.Fatalf("Lang = %v, want C11", res.Lang)
	}
	if res.Accepted() != 3 {
		t.Fatalf("accepted %d of %d", res.Accepted(), len(res.Decls))
	}
	if got, want := res.Decls[1].English, "declare p as pointer to T"; got != want {
		t.Errorf("English = %q, want %q", got, want)
	}
	if got, want := res.Decls[2].English, "declare a as integer\ndeclare b as pointer to integer"; got != want {
		t.Errorf("English = %q, want %q", got, want)
	}
}

func TestTypedefVisibleToLaterEntries(t *testing.T) {
	const text = `
decls:
  - {name: word, specs: [typedef], builtin: [unsigned, int]}
  - {name: w, typedef: word}
`
	res := checkOne(t, text, &Options{Lang: dialect.C17})
	if res.Accepted() != 1 {
		t.Fatalf("diagnostics = %v", res.Bag.Items())
	}
}

func TestCheckFilesErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want []diag.Code
		oks  []bool
	}{
		{
			name: "pointer to reference",
			text: "lang: c++11\ndecls:\n  - {name: p, pointer: {to: {reference: {to: {builtin: [int]}}}}}\n  - {name: x, builtin: [int]}\n",
			want: []diag.Code{diag.SemPointer},
			oks:  []bool{false, true},
		},
		{
			name: "conflicting specifiers",
			text: "decls:\n  - {name: x, builtin: [int, int]}\n",
			want: []diag.Code{diag.TypConflict},
			oks:  []bool{false},
		},
		{
			name: "warning",
			text: "lang: c++11\ndecls:\n  - {name: r, builtin: [register, int]}\n",
			opts: Options{Warnings: true},
			want: []diag.Code{diag.NamDeprecatedRegister},
			oks:  []bool{true},
		},
		{
			name: "warning as error",
			text: "lang: c++11\ndecls:\n  - {name: r, builtin: [register, int]}\n",
			opts: Options{Warnings: true, WarningsAsErrors: true},
			want: []diag.Code{diag.NamDeprecatedRegister},
			oks:  []bool{false},
		},
		{
			name: "unknown key",
			text: "decl: []\n",
			want: []diag.Code{diag.DclUnknownKey},
		},
		{
			name: "empty document",
			text: "lang: c99\n",
			want: []diag.Code{diag.DclNoDecls},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Lang = dialect.C17
			res := checkOne(t, tt.text, &opts)
			if got := codes(res.Bag); !slices.Equal(got, tt.want) {
				t.Fatalf("codes = %v, want %v", got, tt.want)
			}
			var oks []bool
			for _, d := range res.Decls {
				oks = append(oks, d.OK)
			}
			if !slices.Equal(oks, tt.oks) {
				t.Fatalf("entries ok = %v, want %v", oks, tt.oks)
			}
		})
	}
}

func TestWarningAsErrorSeverity(t *testing.T) {
	res := checkOne(t, "lang: c++11\ndecls:\n  - {name: r, builtin: [register, int]}\n",
		&Options{Warnings: true, WarningsAsErrors: true})
	if !res.Bag.HasErrors() || res.Bag.Count(diag.SevWarning) != 0 {
		t.Fatalf("warning was not promoted: %v", res.Bag.Items())
	}
	// повышенное предупреждение отклоняет запись
	if res.Accepted() != 0 {
		t.Fatalf("entry with a promoted warning accepted: %+v", res.Decls)
	}
}

func TestZeroLangIsNewestC(t *testing.T) {
	res := checkOne(t, "decls:\n  - {name: p, pointer: {to: {builtin: [void]}}}\n", &Options{})
	if res.Lang != dialect.NewestC {
		t.Fatalf("Lang = %v, want %v", res.Lang, dialect.NewestC)
	}
	if res.Accepted() != 1 {
		t.Fatalf("diagnostics = %v", res.Bag.Items())
	}
}

func TestEnglishInput(t *testing.T) {
	const text = `
lang: c++17
input: english
decls:
  - name: p
    pointer: {to: {array: {size: 3, of: {builtin: [int]}}}}
  - name: q
    pointer: {to: {reference: {to: {builtin: [int]}}}}
`
	res := checkOne(t, text, &Options{Explain: true})
	if res.Input != sema.FromEnglish {
		t.Fatalf("Input = %v", res.Input)
	}
	if got, want := res.Decls[0].Translation(res.Input), "int (*p)[3]"; got != want {
		t.Errorf("Translation = %q, want %q", got, want)
	}
	if got, want := res.Decls[0].English, "declare p as pointer to array 3 of integer"; got != want {
		t.Errorf("English = %q, want %q", got, want)
	}
	if res.Decls[1].OK {
		t.Fatal("pointer to reference accepted")
	}
	items := res.Bag.Items()
	if len(items) != 1 || !slices.Equal(items[0].Hints, []string{"reference to pointer"}) {
		t.Fatalf("diagnostics = %+v", items)
	}
}

func TestInputOptionIsDefault(t *testing.T) {
	text := "lang: c++17\ndecls:\n  - {name: q, pointer: {to: {reference: {to: {builtin: [int]}}}}}\n"
	native := checkOne(t, text, &Options{})
	english := checkOne(t, text, &Options{Input: sema.FromEnglish})
	if h := native.Bag.Items()[0].Hints; !slices.Equal(h, []string{`"*&"`}) {
		t.Fatalf("native hints = %v", h)
	}
	if h := english.Bag.Items()[0].Hints; !slices.Equal(h, []string{"reference to pointer"}) {
		t.Fatalf("english hints = %v", h)
	}
}

func TestLoadError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	batch, err := CheckFiles(context.Background(), []string{missing}, &Options{})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if got := codes(batch.Files[0].Bag); !slices.Equal(got, []diag.Code{diag.IOLoadFileError}) {
		t.Fatalf("codes = %v", got)
	}
	if !batch.HasErrors() {
		t.Fatal("HasErrors() = false")
	}
}

func TestTypedefDocuments(t *testing.T) {
	dir := t.TempDir()
	first := writeDoc(t, dir, "a.yaml", "typedefs:\n  - {name: A, type: {builtin: [int]}}\n")
	second := writeDoc(t, dir, "b.yaml", "typedefs:\n  - {name: B, type: {pointer: {to: {typedef: A}}}}\n")
	doc := writeDoc(t, dir, "use.yaml", "decls:\n  - {name: x, typedef: B}\n")

	batch, err := CheckFiles(context.Background(), []string{doc}, &Options{Typedefs: []string{first, second}})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if len(batch.Typedefs) != 2 {
		t.Fatalf("typedef results = %d", len(batch.Typedefs))
	}
	if batch.HasErrors() {
		for _, r := range append(batch.Typedefs, batch.Files...) {
			t.Logf("%s: %v", r.Path, r.Bag.Items())
		}
		t.Fatal("unexpected errors")
	}
}

func TestLoadTypedefs(t *testing.T) {
	dir := t.TempDir()
	doc := writeDoc(t, dir, "a.yaml", "typedefs:\n  - {name: handle_t, type: {pointer: {to: {builtin: [void]}}}}\n")

	registry, batch, err := LoadTypedefs(context.Background(), &Options{Typedefs: []string{doc}})
	if err != nil {
		t.Fatalf("LoadTypedefs: %v", err)
	}
	if batch.HasErrors() {
		t.Fatalf("unexpected errors: %v", batch.Typedefs[0].Bag.Items())
	}
	e, ok := registry.Lookup("handle_t")
	if !ok || !e.UserDefined {
		t.Fatalf("handle_t = %v, %v", e, ok)
	}
	if _, ok := registry.Lookup("size_t"); !ok {
		t.Fatal("predefined size_t missing")
	}
}

func TestListDeclFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "b.yaml", "")
	writeDoc(t, dir, "a.yml", "")
	writeDoc(t, dir, "sub/c.YAML", "")
	writeDoc(t, dir, "notes.txt", "")
	single := writeDoc(t, t.TempDir(), "one.yaml", "")

	got, err := ListDeclFiles([]string{dir, single, single})
	if err != nil {
		t.Fatalf("ListDeclFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "sub", "c.YAML"),
		single,
	}
	if !slices.Equal(got, want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
}

func TestCheckFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"d.yaml", "c.yaml", "b.yaml", "a.yaml"} {
		paths = append(paths, writeDoc(t, dir, name, "decls:\n  - {name: x, builtin: [int]}\n"))
	}
	batch, err := CheckFiles(context.Background(), paths, &Options{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	for i, r := range batch.Files {
		if r.Path != filepath.ToSlash(paths[i]) && r.Path != paths[i] {
			t.Fatalf("result %d is %s, want %s", i, r.Path, paths[i])
		}
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestProgressAndTimings(t *testing.T) {
	sink := &recordSink{}
	var phases []string
	var mu sync.Mutex
	opts := &Options{
		EnableTimings: true,
		Progress:      sink,
		Observer: func(ev PhaseEvent) {
			mu.Lock()
			defer mu.Unlock()
			if ev.Status == PhaseEnd {
				phases = append(phases, ev.Name)
			}
		},
		Explain: true,
	}
	res := checkOne(t, "decls:\n  - {name: x, builtin: [int]}\n", opts)

	if want := []string{"parse", "check", "explain"}; !slices.Equal(phases, want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 3 {
		t.Fatalf("Timing = %+v", res.Timing)
	}
	var timing bool
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings && strings.Contains(d.Notes[0].Msg, `"kind":"file"`) {
			timing = true
		}
	}
	if !timing {
		t.Fatal("no timings diagnostic")
	}
	var explaining bool
	for _, ev := range sink.events {
		if ev.Stage == StageExplain && ev.Status == StatusWorking {
			explaining = true
		}
	}
	if !explaining {
		t.Fatalf("no explain event in %+v", sink.events)
	}
	last := sink.events[len(sink.events)-1]
	if last.Stage != StageExplain || last.Status != StatusDone {
		t.Fatalf("last event = %+v", last)
	}
}

func TestExcludeFiles(t *testing.T) {
	files := []string{"docs/a.yaml", "docs/a_test.yaml", "vendor/x/b.yaml", "c.yml"}
	got, err := ExcludeFiles(files, []string{"*_test.yaml", "vendor/**"})
	if err != nil {
		t.Fatalf("ExcludeFiles: %v", err)
	}
	if want := []string{"docs/a.yaml", "c.yml"}; !slices.Equal(got, want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
}
