package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every declaration document loaded during a run.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string            // базовая директория для относительных путей
}

func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir возвращает базовую директорию, по умолчанию рабочую.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores content under path and returns a new FileID, even when the
// path was added before; lookups by path see the newest one.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(n)
	p := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    p,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[p] = id
	return id
}

// Load reads a file from disk, drops a BOM, normalises CRLF and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds stdin or test input.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id, nil if unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Offset is the inverse of Resolve for one position; positions past the end
// clamp to the end of the content.
func (f *File) Offset(pos LineCol) uint32 {
	size := toU32(len(f.Content))
	start := lineStart(f.LineIdx, pos.Line)
	if start > size {
		return size
	}
	col := pos.Col
	if col > 0 {
		col--
	}
	if off := start + col; off <= size {
		return off
	}
	return size
}

// SpanAt returns the span of length n starting at pos.
func (f *File) SpanAt(pos LineCol, n uint32) Span {
	start := f.Offset(pos)
	end := min(start+n, toU32(len(f.Content)))
	return Span{File: f.ID, Start: start, End: end}
}

// GetLine возвращает строку с заданным номером (1-based) без '\n'.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	size := toU32(len(f.Content))
	start := lineStart(f.LineIdx, lineNum)
	if start >= size {
		return ""
	}
	end := size
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	return string(f.Content[start:end])
}

// FormatPath форматирует путь: "absolute", "relative", "basename" или как есть.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
	case "relative":
		if f.Flags&FileVirtual != 0 {
			return f.Path
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	}
	return f.Path
}
