package driver

import (
	"context"
	"errors"
	"fmt"

	"cdecl/internal/ast"
	"cdecl/internal/ctype"
	"cdecl/internal/declfile"
	"cdecl/internal/diag"
	"cdecl/internal/dialect"
	"cdecl/internal/english"
	"cdecl/internal/gibberish"
	"cdecl/internal/observ"
	"cdecl/internal/sema"
	"cdecl/internal/source"
	"cdecl/internal/typedefs"
)

// Options содержит опции проверки документов.
type Options struct {
	// Lang is used for documents without a "lang" key.
	// A zero Lang means the newest C.
	Lang dialect.Lang
	// Input is used for documents without an "input" key.
	Input            sema.Input
	Warnings         bool
	WarningsAsErrors bool
	MaxDiagnostics   int
	// Explain renders every accepted declaration in English and as C/C++.
	Explain       bool
	EnableTimings bool
	// Typedefs are documents whose typedefs every checked file sees.
	Typedefs []string
	Jobs     int
	Cache    *Cache
	Progress ProgressSink
	Observer PhaseObserver
}

func (o *Options) lang() dialect.Lang {
	if o.Lang == 0 {
		return dialect.NewestC
	}
	return o.Lang
}

// DeclResult is the outcome of one document entry.
type DeclResult struct {
	Kind declfile.EntryKind
	Span source.Span
	OK   bool
	// English and Declaration are set for accepted entries when
	// Options.Explain is on.
	English     string
	Declaration string
}

// Translation is what an entry reads as on the other side: the C/C++
// declaration for English input, the English for native input.
func (d DeclResult) Translation(in sema.Input) string {
	if in == sema.FromEnglish {
		return d.Declaration
	}
	return d.English
}

// FileResult содержит результат проверки одного документа.
type FileResult struct {
	Path   string
	FileID source.FileID
	// Lang is the dialect the document was checked in.
	Lang   dialect.Lang
	Input  sema.Input
	Bag    *diag.Bag
	Decls  []DeclResult
	Timing *observ.Report
	Cached bool
}

// Accepted counts the entries that passed.
func (r *FileResult) Accepted() int {
	n := 0
	for _, d := range r.Decls {
		if d.OK {
			n++
		}
	}
	return n
}

// fileCheck is the state of checking one document. Every file gets its own
// tree, registry and dialect context, so files are checked in parallel
// without locks.
type fileCheck struct {
	opts     *Options
	file     *source.File
	result   *FileResult
	reporter *diag.CountingReporter
	timer    *observ.Timer
	// registry is base plus the typedefs the document declared.
	registry *typedefs.Registry
}

func (fc *fileCheck) begin(name string) int {
	if fc.opts.Observer != nil {
		fc.opts.Observer(PhaseEvent{File: fc.file.Path, Name: name, Status: PhaseStart})
	}
	if fc.timer == nil {
		return -1
	}
	return fc.timer.Begin(name)
}

func (fc *fileCheck) end(idx int, name, note string) {
	elapsed := fc.timer.End(idx, note)
	if fc.opts.Observer != nil {
		fc.opts.Observer(PhaseEvent{File: fc.file.Path, Name: name, Status: PhaseEnd, Elapsed: elapsed})
	}
}

// CheckFile checks the document file against a copy of base; a nil base
// means the predefined typedefs.
func CheckFile(ctx context.Context, file *source.File, base *typedefs.Registry, opts *Options) (*FileResult, error) {
	if base == nil {
		base = typedefs.NewPredefined()
	}
	res, _, err := checkFile(ctx, file, base, opts)
	return res, err
}

func checkFile(ctx context.Context, file *source.File, base *typedefs.Registry, opts *Options) (*FileResult, *typedefs.Registry, error) {
	if opts == nil {
		opts = &Options{}
	}
	fc := &fileCheck{
		opts:     opts,
		file:     file,
		registry: base.Clone(),
		result: &FileResult{
			Path:   file.Path,
			FileID: file.ID,
			Lang:   opts.lang(),
			Input:  opts.Input,
			Bag:    diag.NewBag(opts.MaxDiagnostics),
		},
	}
	if opts.EnableTimings {
		fc.timer = observ.NewTimer()
	}
	// typedef-переопределение проверяется и для списка, и для его деклараторов
	var next diag.Reporter = diag.NewDedupReporter(diag.BagReporter{Bag: fc.result.Bag})
	if opts.WarningsAsErrors {
		next = diag.PromoteReporter{Next: next}
	}
	// считаем уже после повышения, иначе ошибка сочтётся предупреждением
	fc.reporter = &diag.CountingReporter{Next: next}

	err := fc.run(ctx)
	if fc.timer != nil {
		report := fc.timer.Report()
		fc.result.Timing = &report
		appendTimingDiagnostic(fc.result.Bag, fileStart(file), TimingPayload{
			Kind:    "file",
			Path:    file.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	return fc.result, fc.registry, err
}

func (fc *fileCheck) run(ctx context.Context) error {
	emit(fc.opts.Progress, fc.file.Path, StageParse, StatusWorking, nil, 0)
	parseIdx := fc.begin("parse")
	doc, err := declfile.Parse(fc.file)
	fc.end(parseIdx, "parse", "")
	if err != nil {
		fc.reportDocError(err)
		emit(fc.opts.Progress, fc.file.Path, StageParse, StatusError, err, 0)
		return nil
	}
	if doc.HasLang {
		fc.result.Lang = doc.Lang
	}
	if doc.HasInput {
		fc.result.Input = doc.Input
	}
	dctx := dialect.NewContext(fc.result.Lang)
	registry := fc.registry

	emit(fc.opts.Progress, fc.file.Path, StageCheck, StatusWorking, nil, 0)
	checkIdx := fc.begin("check")
	tree := ast.NewTree(64)
	b := &declfile.Builder{Doc: doc, Context: dctx, Typedefs: registry, Reporter: fc.reporter}
	sopts := sema.Options{
		Reporter: fc.reporter,
		Context:  dctx,
		Typedefs: registry,
		Input:    fc.result.Input,
		Warnings: fc.opts.Warnings,
	}
	type accepted struct {
		decl  int
		roots []ast.NodeID
	}
	var explain []accepted
	for _, e := range doc.Entries() {
		if err := ctx.Err(); err != nil {
			fc.end(checkIdx, "check", "canceled")
			return err
		}
		errsBefore := fc.reporter.Errors
		roots, ok := b.Build(tree, e)
		if ok {
			ok = checkEntry(tree, e.Kind, roots, sopts)
		}
		if ok {
			ok = registerTypedefs(tree, roots, registry, fc.reporter)
		}
		// предупреждения, ставшие ошибками, тоже отклоняют запись
		ok = ok && fc.reporter.Errors == errsBefore
		fc.result.Decls = append(fc.result.Decls, DeclResult{Kind: e.Kind, Span: e.Span, OK: ok})
		if ok && fc.opts.Explain {
			explain = append(explain, accepted{decl: len(fc.result.Decls) - 1, roots: roots})
		}
	}
	fc.end(checkIdx, "check", fmt.Sprintf("decls=%d", len(fc.result.Decls)))

	stage := StageCheck
	if len(explain) > 0 {
		stage = StageExplain
		emit(fc.opts.Progress, fc.file.Path, StageExplain, StatusWorking, nil, 0)
		explainIdx := fc.begin("explain")
		for _, a := range explain {
			d := &fc.result.Decls[a.decl]
			d.English = english.ExplainList(tree, a.roots, dctx)
			d.Declaration = gibberish.DeclareList(tree, a.roots, dctx)
		}
		fc.end(explainIdx, "explain", fmt.Sprintf("input=%s", fc.result.Input))
	}

	status := StatusDone
	if fc.result.Bag.HasErrors() {
		status = StatusError
	}
	emit(fc.opts.Progress, fc.file.Path, stage, status, nil, 0)
	return nil
}

func checkEntry(tree *ast.Tree, kind declfile.EntryKind, roots []ast.NodeID, opts sema.Options) bool {
	switch {
	case len(roots) == 0:
		return true
	case kind == declfile.EntryCast:
		return sema.CheckCast(tree, roots[0], opts)
	case kind == declfile.EntryList:
		return sema.CheckList(tree, roots, opts)
	default:
		return sema.CheckDeclaration(tree, roots[0], opts)
	}
}

// registerTypedefs makes the typedefs among roots visible to later entries.
func registerTypedefs(tree *ast.Tree, roots []ast.NodeID, registry *typedefs.Registry, r diag.Reporter) bool {
	for _, root := range roots {
		n := tree.Get(root)
		if n == nil || n.Kind == ast.KindCast || !n.Type.Has(ctype.StoreTypedef) {
			continue
		}
		name := tree.FindName(root)
		if err := registry.Add(name, tree, root, true); err != nil {
			diag.ReportError(r, diag.SemRedefinition, n.Span, err.Error()).Emit()
			return false
		}
	}
	return true
}

// reportDocError turns a declfile.Parse error into a diagnostic.
func (fc *fileCheck) reportDocError(err error) {
	var de *declfile.Error
	switch {
	case errors.As(err, &de):
		diag.ReportError(fc.reporter, de.Code, de.Span, de.Msg).Emit()
	case errors.Is(err, declfile.ErrNoDecls):
		diag.ReportError(fc.reporter, diag.DclNoDecls, fileStart(fc.file), `document has no "decls" or "typedefs"`).Emit()
	default:
		diag.ReportError(fc.reporter, diag.DclSyntax, fileStart(fc.file), err.Error()).Emit()
	}
}

func fileStart(f *source.File) source.Span {
	return source.Span{File: f.ID}
}
