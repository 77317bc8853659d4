package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"cdecl/internal/dialect"
	"cdecl/internal/driver"
	"cdecl/internal/typedefs"
)

func TestParseProgressMode(t *testing.T) {
	cases := []struct {
		input string
		want  progressMode
	}{
		{"AUTO", progressAuto},
		{" on ", progressOn},
		{"off", progressOff},
	}
	for _, tc := range cases {
		got, err := parseProgressMode(tc.input)
		if err != nil {
			t.Fatalf("parseProgressMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseProgressMode(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
	if _, err := parseProgressMode("sometimes"); err == nil {
		t.Fatal("parseProgressMode accepted an unknown mode")
	}
}

func TestProgressViewEnabled(t *testing.T) {
	tests := []struct {
		name string
		view progressView
		want bool
	}{
		{"auto on a terminal", progressView{mode: progressAuto, format: "pretty", files: 3, stderrTTY: true}, true},
		{"auto in a pipe", progressView{mode: progressAuto, format: "pretty", files: 3}, false},
		{"auto with one document", progressView{mode: progressAuto, format: "pretty", files: 1, stderrTTY: true}, false},
		{"forced on", progressView{mode: progressOn, format: "short", files: 1}, true},
		{"forced off", progressView{mode: progressOff, format: "pretty", files: 3, stderrTTY: true}, false},
		// JSON и --quiet важнее --ui on
		{"json", progressView{mode: progressOn, format: "json", files: 3, stderrTTY: true}, false},
		{"quiet", progressView{mode: progressOn, format: "pretty", quiet: true, files: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.view.enabled(); got != tt.want {
				t.Fatalf("enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderLangs(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	if err := renderLangs(&buf, dialect.C11); err != nil {
		t.Fatalf("renderLangs: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(dialect.All()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(dialect.All()))
	}
	var marked string
	for _, line := range lines {
		if strings.HasPrefix(line, "* ") {
			marked = line
		}
	}
	if !strings.HasPrefix(marked, "* C11") || !strings.HasSuffix(marked, "__STDC_VERSION__ 201112L") {
		t.Fatalf("marked line = %q", marked)
	}
	if !strings.Contains(buf.String(), "__cplusplus 201703L") {
		t.Fatalf("no C++17 macro in:\n%s", buf.String())
	}
}

func TestRenderTypedefs(t *testing.T) {
	registry := typedefs.NewPredefined()

	var c bytes.Buffer
	renderTypedefs(&c, registry, dialect.C17, false)
	if !strings.Contains(c.String(), "size_t ") {
		t.Fatalf("size_t missing from C17 listing:\n%s", c.String())
	}
	if strings.Contains(c.String(), "std::") {
		t.Fatalf("std:: typedef listed for C17:\n%s", c.String())
	}
	// последняя колонка: тип в синтаксисе C
	var sizeLine string
	for _, line := range strings.Split(c.String(), "\n") {
		if strings.HasPrefix(line, "size_t ") {
			sizeLine = line
		}
	}
	if !strings.HasSuffix(sizeLine, " unsigned long") {
		t.Fatalf("size_t row = %q, want the C type last", sizeLine)
	}

	var cpp bytes.Buffer
	renderTypedefs(&cpp, registry, dialect.CPP17, false)
	if !strings.Contains(cpp.String(), "std::byte") {
		t.Fatalf("std::byte missing from C++17 listing")
	}

	// в реестре только предопределённые имена
	var user bytes.Buffer
	renderTypedefs(&user, registry, dialect.C17, true)
	if user.Len() != 0 {
		t.Fatalf("user listing = %q, want empty", user.String())
	}
}

func TestPrintExplanations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")
	doc := "decls:\n  - {name: x, builtin: [int]}\n  - {name: r, reference: {to: {builtin: [int]}}}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	batch, err := driver.CheckFiles(context.Background(), []string{path}, &driver.Options{
		Lang:     dialect.C17,
		Warnings: true,
		Explain:  true,
	})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}

	var plain bytes.Buffer
	printExplanations(&plain, batch, false)
	if got, want := plain.String(), "declare x as integer\n"; got != want {
		t.Fatalf("explanations = %q, want %q", got, want)
	}

	var located bytes.Buffer
	printExplanations(&located, batch, true)
	if !strings.HasSuffix(located.String(), ":2: declare x as integer\n") {
		t.Fatalf("located explanations = %q", located.String())
	}

	var summary bytes.Buffer
	printSummary(&summary, batch)
	if !strings.HasPrefix(summary.String(), "1 documents, 1 of 2 declarations accepted,") {
		t.Fatalf("summary = %q", summary.String())
	}
}

func TestPrintExplanationsEnglishInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.yaml")
	doc := "input: english\ndecls:\n  - name: f\n    pointer: {to: {function: {returns: {builtin: [int]}, params: [{builtin: [char]}]}}}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	batch, err := driver.CheckFiles(context.Background(), []string{path}, &driver.Options{Lang: dialect.C17, Explain: true})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	var buf bytes.Buffer
	printExplanations(&buf, batch, false)
	if got, want := buf.String(), "int (*f)(char)\n"; got != want {
		t.Fatalf("explanations = %q, want %q", got, want)
	}
}
