package source

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	out := make([]byte, 0, len(content))
	changed := false
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			changed = true
			continue
		}
		out = append(out, content[i])
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	var out []uint32
	for i, b := range content {
		if b == '\n' {
			out = append(out, toU32(i))
		}
	}
	return out
}

func toU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}

// lineStart returns the offset of the first byte of line (1-based).
func lineStart(lineIdx []uint32, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if int(line-2) >= len(lineIdx) {
		return ^uint32(0)
	}
	return lineIdx[line-2] + 1
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// число переводов строк строго до off
	line, _ := slices.BinarySearch(lineIdx, off)
	l := toU32(line) + 1
	return LineCol{Line: l, Col: off - lineStart(lineIdx, l) + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns path relative to base, or path itself (normalised)
// when it lies outside base.
func RelativePath(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", base, err)
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}
