package driver

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// ExcludeFiles drops the files matching any of patterns. A pattern matches
// either the slash-separated path or the base name, so "*_test.yaml" and
// "vendor/**" both work.
func ExcludeFiles(files, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return files, nil
	}
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	out := files[:0:0]
	for _, f := range files {
		slash := filepath.ToSlash(f)
		base := filepath.Base(f)
		excluded := false
		for _, g := range globs {
			if g.Match(slash) || g.Match(base) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, f)
		}
	}
	return out, nil
}
