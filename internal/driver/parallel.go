package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cdecl/internal/diag"
	"cdecl/internal/source"
	"cdecl/internal/typedefs"
)

// Batch is the outcome of CheckFiles.
type Batch struct {
	FileSet *source.FileSet
	// Typedefs are the results of the typedef documents, in order.
	Typedefs []FileResult
	Files    []FileResult
}

// HasErrors reports whether any document failed.
func (b *Batch) HasErrors() bool {
	for _, group := range [][]FileResult{b.Typedefs, b.Files} {
		for i := range group {
			if group[i].Bag.HasErrors() {
				return true
			}
		}
	}
	return false
}

// isDeclFile: документы с объявлениями это *.yaml и *.yml
func isDeclFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ListDeclFiles returns the declaration documents named by paths:
// files as given, directories walked for *.yaml and *.yml. Paths come back
// in the form FileSet stores them, so progress events match.
func ListDeclFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.ToSlash(filepath.Clean(p))
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			// ошибка чтения появится при загрузке, как IO6001
			add(root)
			continue
		}
		var found []string
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isDeclFile(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		// Сортируем для детерминированного порядка
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return files, nil
}

type loaded struct {
	path string
	id   source.FileID
	err  error
}

// loadAll reads every file up front; FileSet is not safe for concurrent
// Add, and Get pointers stay valid once loading is over.
func loadAll(fileSet *source.FileSet, paths []string, sink ProgressSink) []loaded {
	out := make([]loaded, len(paths))
	for i, path := range paths {
		emit(sink, path, StageLoad, StatusWorking, nil, 0)
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы у диагностики был путь
			id = fileSet.AddVirtual(path, nil)
			emit(sink, path, StageLoad, StatusError, err, 0)
		}
		out[i] = loaded{path: path, id: id, err: err}
	}
	return out
}

func loadErrorResult(l loaded, opts *Options) FileResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + l.err.Error(),
		Primary:  source.Span{File: l.id},
	})
	return FileResult{Path: l.path, FileID: l.id, Lang: opts.lang(), Input: opts.Input, Bag: bag}
}

// loadTypedefs checks the typedef documents in order, each seeing the
// typedefs of the ones before it, and returns the registry they build up.
func loadTypedefs(ctx context.Context, fileSet *source.FileSet, opts *Options) (*typedefs.Registry, []FileResult, Digest, error) {
	registry := typedefs.NewPredefined()
	var digests []Digest
	var results []FileResult

	tdOpts := *opts
	tdOpts.Explain = false
	tdOpts.Warnings = false
	tdOpts.Progress = nil

	for _, l := range loadAll(fileSet, opts.Typedefs, nil) {
		if l.err != nil {
			results = append(results, loadErrorResult(l, opts))
			continue
		}
		file := fileSet.Get(l.id)
		res, next, err := checkFile(ctx, file, registry, &tdOpts)
		if err != nil {
			return nil, nil, Digest{}, err
		}
		registry = next
		digests = append(digests, file.Hash)
		results = append(results, *res)
	}
	return registry, results, combineDigest(Digest{}, digests...), nil
}

// LoadTypedefs builds the registry the documents of a batch start from:
// the predefined typedefs plus those of opts.Typedefs.
func LoadTypedefs(ctx context.Context, opts *Options) (*typedefs.Registry, *Batch, error) {
	if opts == nil {
		opts = &Options{}
	}
	fileSet := source.NewFileSet()
	registry, results, _, err := loadTypedefs(ctx, fileSet, opts)
	if err != nil {
		return nil, nil, err
	}
	return registry, &Batch{FileSet: fileSet, Typedefs: results}, nil
}

// CheckFiles checks the documents named by paths in parallel. Typedef
// documents from opts are checked first, sequentially.
func CheckFiles(ctx context.Context, paths []string, opts *Options) (*Batch, error) {
	if opts == nil {
		opts = &Options{}
	}
	files, err := ListDeclFiles(paths)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSet()
	batch := &Batch{FileSet: fileSet}

	base, tdResults, tdDigest, err := loadTypedefs(ctx, fileSet, opts)
	if err != nil {
		return batch, err
	}
	batch.Typedefs = tdResults

	if len(files) == 0 {
		return batch, nil
	}
	for _, path := range files {
		emit(opts.Progress, path, StageLoad, StatusQueued, nil, 0)
	}
	docs := loadAll(fileSet, files, opts.Progress)

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(docs)))

	for i, l := range docs {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if l.err != nil {
				results[i] = loadErrorResult(l, opts)
				return nil
			}
			res, err := checkCached(gctx, fileSet.Get(l.id), base, tdDigest, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", l.path, err)
			}
			results[i] = *res
			return nil
		})
	}

	err = g.Wait()
	batch.Files = results
	return batch, err
}

// checkCached consults opts.Cache before checking file. Cache problems
// never fail a check; they become IO6002 warnings.
func checkCached(ctx context.Context, file *source.File, base *typedefs.Registry, tdDigest Digest, opts *Options) (*FileResult, error) {
	if opts.Cache == nil {
		res, _, err := checkFile(ctx, file, base, opts)
		return res, err
	}

	key := cacheKey(file.Hash, opts, tdDigest)
	var payload CachePayload
	hit, cacheErr := opts.Cache.Get(key, &payload)
	if hit {
		res := payloadToResult(&payload, file.ID, opts.MaxDiagnostics)
		res.Path = file.Path
		emit(opts.Progress, file.Path, StageCheck, StatusCached, nil, 0)
		return res, nil
	}

	res, _, err := checkFile(ctx, file, base, opts)
	if err != nil {
		return res, err
	}
	if cacheErr == nil || errors.Is(cacheErr, ErrCacheSchema) {
		cacheErr = opts.Cache.Put(key, resultToPayload(res))
	}
	if cacheErr != nil {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.IOCacheError,
			Message:  "result cache: " + cacheErr.Error(),
			Primary:  fileStart(file),
		})
	}
	return res, nil
}
