package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"

	"cdecl/internal/declfile"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/sema"
	"cdecl/internal/source"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 2

// ErrCacheSchema is returned by Get for a payload written by another
// schema version.
var ErrCacheSchema = errors.New("cache schema mismatch")

// memEntries bounds the in-memory layer in front of the disk.
const memEntries = 512

// Cache хранит результаты проверки документов на диске, по Digest.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
	mem *lru.Cache[Digest, *CachePayload]
}

// CacheStats describes what is stored on disk.
type CacheStats struct {
	Entries int
	Bytes   int64
}

// CachePayload is one checked document. Spans are kept as offsets only;
// file ids differ between runs.
type CachePayload struct {
	Schema uint16
	Path   string
	Lang   uint32
	Input  uint8
	Decls  []cachedDecl
	Diags  []cachedDiagnostic
}

type cachedSpan struct {
	Start, End uint32
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  cachedSpan
	Notes    []cachedNote
	Hints    []string
}

type cachedDecl struct {
	Kind    uint8
	Span    cachedSpan
	OK          bool
	English     string
	Declaration string
}

// OpenCache opens a cache in dir; an empty dir means the user cache
// directory for app.
func OpenCache(app, dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	mem, err := lru.New[Digest, *CachePayload](memEntries)
	if err != nil {
		return nil, err
	}
	return &Cache{dir: dir, mem: mem}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "docs", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the cache.
func (c *Cache) Put(key Digest, payload *CachePayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = cacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err = os.Rename(f.Name(), p); err != nil {
		return err
	}
	if c.mem != nil {
		c.mem.Add(key, payload)
	}
	return nil
}

// Get reads a payload. A missing entry is (false, nil).
func (c *Cache) Get(key Digest, out *CachePayload) (ok bool, err error) {
	if c == nil {
		return false, nil
	}
	if c.mem != nil {
		if p, hit := c.mem.Get(key); hit {
			*out = *p
			return true, nil
		}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, fmt.Errorf("%w: got %d, want %d", ErrCacheSchema, out.Schema, cacheSchemaVersion)
	}
	if c.mem != nil {
		kept := *out
		c.mem.Add(key, &kept)
	}
	return true, nil
}

// Stats counts the entries on disk and their size.
func (c *Cache) Stats() (CacheStats, error) {
	var st CacheStats
	if c == nil {
		return st, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	err := filepath.WalkDir(filepath.Join(c.dir, "docs"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".mp" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		st.Entries++
		st.Bytes += info.Size()
		return nil
	})
	return st, err
}

// DropAll removes every cached entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mem != nil {
		c.mem.Purge()
	}

	// переименуем каталог, чтобы параллельный запуск не увидел половину
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func toCachedSpan(sp source.Span) cachedSpan { return cachedSpan{Start: sp.Start, End: sp.End} }

func (s cachedSpan) in(file source.FileID) source.Span {
	return source.Span{File: file, Start: s.Start, End: s.End}
}

// resultToPayload converts a checked file for caching.
func resultToPayload(r *FileResult) *CachePayload {
	if r == nil {
		return nil
	}
	payload := &CachePayload{
		Schema: cacheSchemaVersion,
		Path:   r.Path,
		Lang:   uint32(r.Lang),
		Input:  uint8(r.Input),
		Decls:  make([]cachedDecl, len(r.Decls)),
	}
	for i, d := range r.Decls {
		payload.Decls[i] = cachedDecl{
			Kind:        uint8(d.Kind),
			Span:        toCachedSpan(d.Span),
			OK:          d.OK,
			English:     d.English,
			Declaration: d.Declaration,
		}
	}
	for _, d := range r.Bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  toCachedSpan(d.Primary),
			Hints:    d.Hints,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Span: toCachedSpan(n.Span), Msg: n.Msg})
		}
		payload.Diags = append(payload.Diags, cd)
	}
	return payload
}

// payloadToResult restores a result for the file loaded as file.
func payloadToResult(p *CachePayload, file source.FileID, maxDiagnostics int) *FileResult {
	r := &FileResult{
		Path:   p.Path,
		FileID: file,
		Lang:   dialect.Lang(p.Lang),
		Input:  sema.Input(p.Input),
		Bag:    diag.NewBag(maxDiagnostics),
		Decls:  make([]DeclResult, len(p.Decls)),
		Cached: true,
	}
	for i, d := range p.Decls {
		r.Decls[i] = DeclResult{
			Kind:        declfile.EntryKind(d.Kind),
			Span:        d.Span.in(file),
			OK:          d.OK,
			English:     d.English,
			Declaration: d.Declaration,
		}
	}
	for _, cd := range p.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  cd.Primary.in(file),
			Hints:    cd.Hints,
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: n.Span.in(file), Msg: n.Msg})
		}
		r.Bag.Add(d)
	}
	return r
}
