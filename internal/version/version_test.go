package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	tests := map[string]string{
		"1.2.3":        "1.2.3",
		"0.1.0-dev":    "0.1.0-dev",
		" 2.0.0-rc.1 ": "2.0.0-rc.1",
		"1.2.3.4":      "1.2.3.4",
	}
	for in, want := range tests {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored() with Version %q = %q, want %q", in, got, want)
		}
	}
}
