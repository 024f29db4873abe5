package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"regionorm/internal/diag"
	"regionorm/internal/source"
	"regionorm/internal/trace"
)

// FileExt is the extension of signature files picked up by NormalizeDir.
const FileExt = ".rsig"

// ListFiles возвращает отсортированный список всех *.rsig файлов в директории
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, FileExt) {
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

// NormalizeDir normalizes every *.rsig file under dir in parallel. Results
// follow the sorted file order. Load failures become IO5001 diagnostics on
// the affected file; only cancellation is returned as an error.
func NormalizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return NormalizeFiles(ctx, dir, files, opts)
}

// NormalizeFiles is NormalizeDir over an explicit file list.
func NormalizeFiles(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "normalize-dir", trace.CurrentSpan(ctx)).
		WithExtra("files", itoa(len(files)))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	// FileSet не потокобезопасен: всё загружаем заранее, воркеры только читают
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))
	started := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.New(diag.SevError, diag.IOLoadFileError,
					source.Span{File: fileIDs[i]}, "failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, FileID: fileIDs[i], Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			results[i] = processFile(gctx, fileSet, fileIDs[i], opts)
			return nil
		})
	}

	err := g.Wait()
	emit(opts.Progress, Event{Stage: StagePrint, Status: StatusDone, Elapsed: time.Since(started)})
	return fileSet, results, err
}
