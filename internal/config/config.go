// Package config loads cdecl.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cdecl/internal/dialect"
)

// FileName is the configuration file searched for from the working
// directory upward.
const FileName = "cdecl.toml"

type Config struct {
	Lang     LangConfig     `toml:"lang"`
	Check    CheckConfig    `toml:"check"`
	Output   OutputConfig   `toml:"output"`
	Typedefs TypedefsConfig `toml:"typedefs"`
	Cache    CacheConfig    `toml:"cache"`

	// Path of the file the config was read from; "" for defaults.
	Path string `toml:"-"`
}

type LangConfig struct {
	Default string `toml:"default"`
}

type CheckConfig struct {
	Warnings         bool `toml:"warnings"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
	MaxDiagnostics   int  `toml:"max_diagnostics"`
	// Input is what documents without an "input" key stand for:
	// native | english.
	Input string `toml:"input"`
	// Exclude are glob patterns of documents to skip.
	Exclude []string `toml:"exclude"`
}

type OutputConfig struct {
	Format  string `toml:"format"` // pretty | short | json
	Color   string `toml:"color"`  // auto | on | off
	Explain bool   `toml:"explain"`
	UI      string `toml:"ui"` // auto | on | off
}

type TypedefsConfig struct {
	// Files are declaration documents whose typedefs are loaded first.
	Files []string `toml:"files"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the configuration used when there is no cdecl.toml.
func Default() Config {
	return Config{
		Lang:   LangConfig{Default: "C17"},
		Check:  CheckConfig{Warnings: true, MaxDiagnostics: 100, Input: "native"},
		Output: OutputConfig{Format: "pretty", Color: "auto", Explain: true, UI: "auto"},
	}
}

// Find walks up from startDir looking for cdecl.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads cdecl.toml above startDir, or the defaults if none exists.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), err
	}
	return Load(path)
}

// Load reads path. Keys the file does not define keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	var file Config
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("lang", "default") {
		cfg.Lang.Default = file.Lang.Default
	}
	if meta.IsDefined("check", "warnings") {
		cfg.Check.Warnings = file.Check.Warnings
	}
	if meta.IsDefined("check", "warnings_as_errors") {
		cfg.Check.WarningsAsErrors = file.Check.WarningsAsErrors
	}
	if meta.IsDefined("check", "max_diagnostics") {
		cfg.Check.MaxDiagnostics = file.Check.MaxDiagnostics
	}
	if meta.IsDefined("check", "input") {
		cfg.Check.Input = file.Check.Input
	}
	if meta.IsDefined("check", "exclude") {
		cfg.Check.Exclude = file.Check.Exclude
	}
	if meta.IsDefined("output", "format") {
		cfg.Output.Format = file.Output.Format
	}
	if meta.IsDefined("output", "color") {
		cfg.Output.Color = file.Output.Color
	}
	if meta.IsDefined("output", "explain") {
		cfg.Output.Explain = file.Output.Explain
	}
	if meta.IsDefined("output", "ui") {
		cfg.Output.UI = file.Output.UI
	}
	if meta.IsDefined("typedefs", "files") {
		base := filepath.Dir(path)
		for _, f := range file.Typedefs.Files {
			if !filepath.IsAbs(f) {
				f = filepath.Join(base, filepath.FromSlash(f))
			}
			cfg.Typedefs.Files = append(cfg.Typedefs.Files, f)
		}
	}
	if meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = file.Cache.Enabled
	}
	if meta.IsDefined("cache", "dir") {
		cfg.Cache.Dir = file.Cache.Dir
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML types alone can not.
func (c Config) Validate() error {
	if _, ok := dialect.Find(c.Lang.Default); !ok {
		return fmt.Errorf("[lang].default: unknown language %q", c.Lang.Default)
	}
	switch c.Output.Format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("[output].format must be pretty, short or json, not %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto, on or off, not %q", c.Output.Color)
	}
	switch c.Output.UI {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].ui must be auto, on or off, not %q", c.Output.UI)
	}
	switch c.Check.Input {
	case "native", "english":
	default:
		return fmt.Errorf("[check].input must be native or english, not %q", c.Check.Input)
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must not be negative")
	}
	return nil
}

// DefaultLang returns the configured dialect.
func (c Config) DefaultLang() dialect.Lang {
	l, ok := dialect.Find(c.Lang.Default)
	if !ok {
		return dialect.NewestC
	}
	return l
}
