package main

import (
	"fmt"
	"strings"
)

// progressMode is the --ui setting of check and explain.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

var progressModes = map[string]progressMode{
	"auto": progressAuto,
	"on":   progressOn,
	"off":  progressOff,
}

func (m progressMode) String() string {
	for name, v := range progressModes {
		if v == m {
			return name
		}
	}
	return "auto"
}

func parseProgressMode(value string) (progressMode, error) {
	m, ok := progressModes[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return m, nil
}

// progressView says how a batch is run.
type progressView struct {
	mode   progressMode
	format string
	quiet  bool
	files  int
	// stderrTTY: прогресс рисуется в stderr, stdout может быть в пайпе
	stderrTTY bool
}

// enabled reports whether the batch shows the Bubble Tea progress view. JSON
// and --quiet never do; in auto mode a single document is done before the
// first frame.
func (v progressView) enabled() bool {
	if v.format == "json" || v.quiet {
		return false
	}
	switch v.mode {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	return v.stderrTTY && v.files > 1
}
