package diagfmt

import (
	"path/filepath"
	"strings"

	"cdecl/internal/source"
)

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	}
	if !filepath.IsAbs(f.Path) {
		return f.Path
	}
	if rel, err := filepath.Rel(fs.BaseDir(), f.Path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.Base(f.Path)
}
