package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"tidy/internal/diag"
	"tidy/internal/observ"
	"tidy/internal/pipeline"
	"tidy/internal/source"
	"tidy/internal/trace"
)

// ParseDirResult: результат разбора одного файла каталога.
type ParseDirResult struct {
	Path string // путь относительно каталога, как в событиях прогресса
	*ParseResult
}

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path string
	*TokenizeResult
}

// ListSources возвращает отсортированный список всех *.td файлов в директории
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

type loadedDir struct {
	fileSet *source.FileSet
	files   []string
	ids     map[string]source.FileID
	errs    map[string]error
}

// loadDir читает все файлы последовательно: FileSet не потокобезопасен.
func loadDir(dir string) (*loadedDir, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, err
	}
	ld := &loadedDir{
		fileSet: source.NewFileSetWithBase(dir),
		files:   files,
		ids:     make(map[string]source.FileID, len(files)),
		errs:    make(map[string]error),
	}
	for _, path := range files {
		fileID, err := ld.fileSet.Load(path)
		if err != nil {
			ld.errs[path] = err
			continue
		}
		ld.ids[path] = fileID
	}
	return ld, nil
}

func loadFailure(path string, err error, max int) *diag.Bag {
	bag := diag.NewBag(max)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load "+path+": "+err.Error()))
	return bag
}

func workers(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// ParseDir парсит все *.td файлы в директории параллельно.
// Results keep the sorted file order; the error is only set on cancellation
// or when the directory cannot be walked.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "parse-dir")
	defer span.End(dir)

	ld, err := loadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	results := make([]ParseDirResult, len(ld.files))
	for i, path := range ld.files {
		results[i].Path = pipeline.DisplayPath(path, dir)
		pipeline.Emit(opts.Progress, pipeline.Event{File: results[i].Path, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}
	if len(ld.files) == 0 {
		return ld.fileSet, nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(ld.files)))

	for i, path := range ld.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			display := results[i].Path
			if loadErr, failed := ld.errs[path]; failed {
				results[i].ParseResult = &ParseResult{FileSet: ld.fileSet, Err: loadErr, Bag: loadFailure(path, loadErr, opts.MaxDiagnostics)}
				pipeline.Emit(opts.Progress, pipeline.Event{File: display, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: loadErr})
				return nil
			}

			fileSpan, fctx := trace.StartSpan(trace.WithFile(gctx, display), trace.ScopeFile, "file:"+display)
			// индекс i уникален для горутины, мьютекс не нужен
			res := parseLoaded(fctx, ld.fileSet, ld.fileSet.Get(ld.ids[path]), display, opts, observ.NewTimer())
			results[i].ParseResult = res
			fileSpan.End(statusDetail(res))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ld.fileSet, results, err
	}
	return ld.fileSet, results, nil
}

// TokenizeDir токенизирует все *.td файлы в директории параллельно
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	ld, err := loadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	results := make([]TokenizeDirResult, len(ld.files))
	if len(ld.files) == 0 {
		return ld.fileSet, nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(opts.Jobs, len(ld.files)))

	for i, path := range ld.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Path = pipeline.DisplayPath(path, dir)
			if loadErr, failed := ld.errs[path]; failed {
				results[i].TokenizeResult = &TokenizeResult{FileSet: ld.fileSet, Bag: loadFailure(path, loadErr, opts.MaxDiagnostics)}
				return nil
			}
			results[i].TokenizeResult = tokenizeFile(ld.fileSet, ld.fileSet.Get(ld.ids[path]), opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ld.fileSet, results, err
	}
	return ld.fileSet, results, nil
}

func statusDetail(res *ParseResult) string {
	switch {
	case res.Err != nil:
		return "error"
	case res.Cached:
		return "cached"
	default:
		return "ok"
	}
}
