package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cdecl/internal/config"
	"cdecl/internal/dialect"
)

// settings are cdecl.toml with command-line flags applied on top.
type settings struct {
	cfg     config.Config
	lang    dialect.Lang
	color   bool
	quiet   bool
	timings bool
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	var s settings
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		s.cfg, err = config.Load(path)
	} else {
		s.cfg, err = config.Discover(".")
	}
	if err != nil {
		return s, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.Changed("lang") {
		if s.cfg.Lang.Default, err = flags.GetString("lang"); err != nil {
			return s, fmt.Errorf("failed to get lang flag: %w", err)
		}
	}
	if flags.Changed("color") {
		if s.cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return s, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Changed("max-diagnostics") {
		if s.cfg.Check.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if err := s.cfg.Validate(); err != nil {
		return s, err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}

	s.lang = s.cfg.DefaultLang()
	switch s.cfg.Output.Color {
	case "on":
		s.color = true
	case "off":
		s.color = false
	default:
		s.color = isTerminal(os.Stdout)
	}
	// version и langs печатают через fatih/color напрямую
	color.NoColor = !s.color
	return s, nil
}
