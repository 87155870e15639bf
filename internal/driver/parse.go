package driver

import (
	"context"
	"fmt"
	"time"

	"tidy/internal/ast"
	"tidy/internal/diag"
	"tidy/internal/observ"
	"tidy/internal/parser"
	"tidy/internal/pipeline"
	"tidy/internal/source"
	"tidy/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Roots   []ast.Element
	Err     error // первая фатальная ошибка разбора; диагностика уже в Bag
	Bag     *diag.Bag
	Cached  bool
	Timing  observ.Report
}

// Parse loads path and parses it. Only I/O failures are returned as error;
// parse failures land in ParseResult.Err and ParseResult.Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	timer := observ.NewTimer()
	idx := timer.Begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	timer.End(idx, "")
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	return parseLoaded(ctx, fs, file, file.Path, opts, timer), nil
}

// ParseSource parses inline text (the -e flag, stdin) as a virtual file.
func ParseSource(ctx context.Context, name, text string, opts Options) *ParseResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(text)))
	return parseLoaded(ctx, fs, file, name, opts, observ.NewTimer())
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, display string, opts Options, timer *observ.Timer) *ParseResult {
	if trace.FileOf(ctx) == "" {
		ctx = trace.WithFile(ctx, display)
	}
	res := &ParseResult{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	table := opts.table()

	var key CacheKey
	if opts.Cache != nil {
		started := time.Now()
		pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageCache, Status: pipeline.StatusWorking})
		idx := timer.Begin("cache")
		key = KeyFor(file, table)
		hit, err := res.fromCache(opts.Cache, key)
		if err != nil {
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: file.ID}, "cache read failed: "+err.Error()).Emit()
		}
		trace.PointCtx(ctx, trace.ScopeFile, "cache", cacheDetail(hit))
		if hit {
			timer.End(idx, "hit")
			res.Timing = timer.Report()
			pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageCache, Status: pipeline.StatusCached, Elapsed: time.Since(started)})
			return res
		}
		timer.End(idx, "miss")
	}

	started := time.Now()
	pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	before := res.Bag.Len()
	idx := timer.Begin("parse")
	pr := parser.ParseFile(ctx, file, parser.Options{Reporter: reporter, Table: table})
	timer.End(idx, fmt.Sprintf("%d tokens, %d items", pr.Tokens, pr.Items))
	res.Roots, res.Err = pr.Roots, pr.Err

	status := pipeline.StatusDone
	if pr.Err != nil {
		status = pipeline.StatusError
	}
	pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageParse, Status: status, Err: pr.Err, Elapsed: time.Since(started)})

	if opts.Cache != nil && pr.Err == nil {
		idx = timer.Begin("cache-store")
		payload := &DiskPayload{
			Path:        file.Path,
			Table:       table.Fingerprint(),
			Roots:       ast.ToRecords(pr.Roots),
			Diagnostics: res.Bag.Items()[before:],
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: file.ID}, "cache write failed: "+err.Error()).Emit()
		}
		timer.End(idx, "")
	}
	res.Timing = timer.Report()
	return res
}

func (res *ParseResult) fromCache(cache *DiskCache, key CacheKey) (bool, error) {
	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	if err != nil || !ok {
		return false, err
	}
	for i := range payload.Roots {
		rebind(&payload.Roots[i], res.File.ID)
	}
	roots, err := ast.FromRecords(payload.Roots)
	if err != nil {
		return false, err
	}
	rebindDiagnostics(payload.Diagnostics, res.File.ID)
	for _, d := range payload.Diagnostics {
		res.Bag.Add(d)
	}
	res.Roots, res.Cached = roots, true
	return true, nil
}

func cacheDetail(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
