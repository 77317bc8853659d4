package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("decls.yaml", []byte("lang: c17\ndecls:\n  - name: x\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"first byte", 0, LineCol{1, 1}},
		{"end of line 1", 9, LineCol{1, 10}},
		{"start of line 2", 10, LineCol{2, 1}},
		{"inside line 3", 19, LineCol{3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if got != tt.want {
				t.Fatalf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
			if back := fs.Get(id).Offset(got); back != tt.off {
				t.Fatalf("Offset(%+v) = %d, want %d", got, back, tt.off)
			}
		})
	}
}

func TestOffsetClamps(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x", []byte("ab\ncd")))
	if got := f.Offset(LineCol{Line: 9, Col: 1}); got != 5 {
		t.Errorf("Offset past last line = %d, want 5", got)
	}
	if got := f.Offset(LineCol{Line: 2, Col: 40}); got != 5 {
		t.Errorf("Offset past line end = %d, want 5", got)
	}
	sp := f.SpanAt(LineCol{Line: 2, Col: 1}, 10)
	if sp.Start != 3 || sp.End != 5 {
		t.Errorf("SpanAt = %v", sp)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x", []byte("one\ntwo\nthree")))
	for i, want := range []string{"", "one", "two", "three", ""} {
		if got := f.GetLine(uint32(i)); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "d.yaml")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if latest, ok := fs.GetLatest(path); !ok || latest != id {
		t.Fatalf("GetLatest = %d, %v", latest, ok)
	}
}

func TestRelativePathOutsideBase(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "other", "file.yaml")
	got, err := RelativePath(target, filepath.Join(tmp, "base"))
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if got != normalizePath(target) {
		t.Fatalf("got %q, want %q", got, normalizePath(target))
	}
	got, err = RelativePath(filepath.Join(tmp, "base", "a.yaml"), filepath.Join(tmp, "base"))
	if err != nil || got != "a.yaml" {
		t.Fatalf("inside base: %q, %v", got, err)
	}
}
