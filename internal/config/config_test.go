package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cdecl/internal/dialect"
)

func writeConfig(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[lang]
default = "c++17"

[output]
format = "json"

[typedefs]
files = ["types.yaml"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultLang() != dialect.CPP17 {
		t.Errorf("lang = %v, want C++17", cfg.DefaultLang())
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q", cfg.Output.Format)
	}
	if !cfg.Check.Warnings || cfg.Check.MaxDiagnostics != 100 || cfg.Output.Color != "auto" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if want := filepath.Join(dir, "types.yaml"); len(cfg.Typedefs.Files) != 1 || cfg.Typedefs.Files[0] != want {
		t.Errorf("typedef files = %v, want [%s]", cfg.Typedefs.Files, want)
	}
}

func TestLoadExplicitFalse(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[check]\nwarnings = false\nexclude = [\"*_draft.yaml\"]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Check.Warnings {
		t.Fatal("warnings = false was ignored")
	}
	if len(cfg.Check.Exclude) != 1 || cfg.Check.Exclude[0] != "*_draft.yaml" {
		t.Fatalf("exclude = %v", cfg.Check.Exclude)
	}
}

func TestLoadInputAndUI(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[check]\ninput = \"english\"\n\n[output]\nui = \"off\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Check.Input != "english" || cfg.Output.UI != "off" {
		t.Fatalf("input = %q, ui = %q", cfg.Check.Input, cfg.Output.UI)
	}
	if d := Default(); d.Check.Input != "native" || d.Output.UI != "auto" {
		t.Fatalf("defaults: input = %q, ui = %q", d.Check.Input, d.Output.UI)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"unknown lang", "[lang]\ndefault = \"c42\"\n", "unknown language"},
		{"bad format", "[output]\nformat = \"xml\"\n", "[output].format"},
		{"unknown key", "[check]\nwarning = true\n", "unknown keys"},
		{"not toml", "[check\n", "failed to parse TOML"},
		{"bad input", "[check]\ninput = \"klingon\"\n", "[check].input"},
		{"bad ui", "[output]\nui = \"sometimes\"\n", "[output].ui"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.text))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[lang]\ndefault = \"c99\"\n")
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(sub)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.DefaultLang() != dialect.C99 {
		t.Fatalf("lang = %v, want C99", cfg.DefaultLang())
	}
}
