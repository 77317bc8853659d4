package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"cdecl/internal/dialect"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache("cdecl", t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	dir := t.TempDir()
	const text = "lang: c++11\ndecls:\n  - {name: r, builtin: [register, int]}\n  - {name: p, pointer: {to: {reference: {to: {builtin: [int]}}}}}\n"
	path := writeDoc(t, dir, "doc.yaml", text)
	opts := &Options{Lang: dialect.C17, Warnings: true, Explain: true, Cache: cache}

	first, err := CheckFiles(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := CheckFiles(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	a, b := first.Files[0], second.Files[0]
	if a.Cached || !b.Cached {
		t.Fatalf("cached = %v then %v", a.Cached, b.Cached)
	}
	if !slices.Equal(codes(a.Bag), codes(b.Bag)) {
		t.Fatalf("codes %v != %v", codes(a.Bag), codes(b.Bag))
	}
	if b.Bag.Items()[0].Primary.File != b.FileID || b.Lang != dialect.CPP11 {
		t.Fatalf("restored result = %+v", b)
	}
	for i := range a.Decls {
		if a.Decls[i].OK != b.Decls[i].OK || a.Decls[i].English != b.Decls[i].English {
			t.Fatalf("decl %d: %+v != %+v", i, a.Decls[i], b.Decls[i])
		}
	}

	opts.WarningsAsErrors = true
	third, err := CheckFiles(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.Files[0].Cached {
		t.Fatal("options change did not miss the cache")
	}
}

func TestCacheSchemaMismatch(t *testing.T) {
	cache, err := OpenCache("cdecl", t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	key := Digest{1}
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := msgpack.Marshal(&CachePayload{Schema: cacheSchemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	var out CachePayload
	if ok, err := cache.Get(key, &out); ok || !errors.Is(err, ErrCacheSchema) {
		t.Fatalf("Get = %v, %v; want ErrCacheSchema", ok, err)
	}
}

func TestCacheDropAll(t *testing.T) {
	cache, err := OpenCache("cdecl", t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	key := Digest{2}
	if err := cache.Put(key, &CachePayload{Path: "x.yaml"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out CachePayload
	if ok, err := cache.Get(key, &out); !ok || err != nil || out.Path != "x.yaml" {
		t.Fatalf("Get = %v, %v, %+v", ok, err, out)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("Get after DropAll = %v, %v", ok, err)
	}
}

func TestCacheKey(t *testing.T) {
	content := Digest{3}
	base := cacheKey(content, &Options{Lang: dialect.C17}, Digest{})
	if base != cacheKey(content, &Options{Lang: dialect.C17, Jobs: 8}, Digest{}) {
		t.Fatal("Jobs changed the key")
	}
	for name, k := range map[string]Digest{
		"lang":     cacheKey(content, &Options{Lang: dialect.C99}, Digest{}),
		"warnings": cacheKey(content, &Options{Lang: dialect.C17, Warnings: true}, Digest{}),
		"typedefs": cacheKey(content, &Options{Lang: dialect.C17}, Digest{4}),
		"content":  cacheKey(Digest{5}, &Options{Lang: dialect.C17}, Digest{}),
	} {
		if k == base {
			t.Errorf("%s did not change the key", name)
		}
	}
}

func TestCacheMemoryAndStats(t *testing.T) {
	cache, err := OpenCache("cdecl", t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	key := Digest{7}
	if err := cache.Put(key, &CachePayload{Path: "a.yaml"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	st, err := cache.Stats()
	if err != nil || st.Entries != 1 || st.Bytes == 0 {
		t.Fatalf("Stats = %+v, %v", st, err)
	}

	// файл удалён, но запись ещё в памяти
	if err := os.Remove(cache.pathFor(key)); err != nil {
		t.Fatal(err)
	}
	var out CachePayload
	if ok, err := cache.Get(key, &out); !ok || err != nil || out.Path != "a.yaml" {
		t.Fatalf("Get = %v, %v, %+v", ok, err, out)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatal("entry survived DropAll")
	}
	if st, _ := cache.Stats(); st.Entries != 0 {
		t.Fatalf("Stats after DropAll = %+v", st)
	}
}
