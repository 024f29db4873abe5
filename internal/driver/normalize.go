package driver

import (
	"context"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/lexer"
	"regionorm/internal/normalize"
	"regionorm/internal/observ"
	"regionorm/internal/parser"
	"regionorm/internal/source"
	"regionorm/internal/trace"
)

// Summary holds the per-file counters that survive caching.
type Summary struct {
	Items      int `json:"items" yaml:"items"`
	Signatures int `json:"signatures" yaml:"signatures"`
	Generated  int `json:"generated" yaml:"generated"`
	Unresolved int `json:"unresolved" yaml:"unresolved"`
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	AST     *ast.File         // nil for cache hits and load failures
	Report  *normalize.Result // nil for cache hits and files with errors
	Output  string            // normalized text, "" when the file has errors
	Changed bool              // Output differs from the input
	Summary Summary
	Bag     *diag.Bag
	Cached  bool
	Timing  observ.Report
}

// Failed reports whether the file could not be normalized.
func (r *FileResult) Failed() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// SourceResult is the outcome of NormalizeSource.
type SourceResult struct {
	FileSet *source.FileSet
	FileResult
}

// NormalizeSource normalizes in-memory text registered under name.
// The cache is not consulted.
func NormalizeSource(ctx context.Context, name string, src []byte, opts Options) *SourceResult {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, src)
	opts.Cache = nil
	return &SourceResult{FileSet: fileSet, FileResult: processFile(ctx, fileSet, id, opts)}
}

// NormalizeFile loads path and normalizes it.
func NormalizeFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return fileSet, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := processFile(ctx, fileSet, id, opts)
	return fileSet, &res, nil
}

// processFile runs lex → parse → normalize → print for a file already in
// fileSet. It only reads from fileSet, so workers may share it.
func processFile(ctx context.Context, fileSet *source.FileSet, id source.FileID, opts Options) (res FileResult) {
	file := fileSet.Get(id)
	res = FileResult{Path: file.Path, FileID: id, Bag: diag.NewBag(opts.maxDiagnostics())}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeModule, "file", trace.CurrentSpan(ctx)).WithExtra("path", file.Path)
	timer := observ.NewTimer()
	status := StatusDone
	defer func() {
		res.Timing = timer.Report()
		span.End(string(status))
	}()

	if err := ctx.Err(); err != nil {
		status = StatusError
		return res
	}

	key := cacheKey(file.Hash, opts)
	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			res.Output = payload.Output
			res.Changed = payload.Changed
			res.Summary = payload.Summary
			res.Cached = true
			cachedToBag(id, payload.Diagnostics, res.Bag)
			status = StatusCached
			emit(opts.Progress, Event{File: file.Path, Stage: StageNormalize, Status: StatusCached})
			return res
		}
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	done := timer.Track("parse")
	rep := diag.BagReporter{Bag: res.Bag}
	maxErrors, err := safecast.Conv[uint](opts.maxDiagnostics())
	if err != nil {
		maxErrors = 0
	}
	lx := lexer.New(file, lexer.Options{Reporter: rep, KeepTrivia: true})
	res.AST = parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	done(fmt.Sprintf("%d items", len(res.AST.Items)))
	res.Summary.Items = len(res.AST.Items)

	if res.Bag.HasErrors() {
		finishBag(res.Bag)
		status = StatusError
		emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusError})
		return res
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageNormalize, Status: StatusWorking})
	done = timer.Track("normalize")
	n := normalize.New(opts.Normalize).WithTracer(tr, span.ID())
	res.Report = n.NormalizeFile(res.AST)
	done(fmt.Sprintf("%d regions", res.Report.Generated()))
	reportNormalize(rep, res.Report, opts)

	emit(opts.Progress, Event{File: file.Path, Stage: StagePrint, Status: StatusWorking})
	done = timer.Track("print")
	res.Output = ast.Format(res.AST)
	done("")
	res.Changed = res.Output != string(file.Content)
	res.Summary.Signatures = len(res.Report.Signatures)
	res.Summary.Generated = res.Report.Generated()
	res.Summary.Unresolved = len(res.Report.Unresolved)
	finishBag(res.Bag)

	if opts.Cache != nil {
		payload := &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Path:        file.Path,
			Output:      res.Output,
			Changed:     res.Changed,
			Summary:     res.Summary,
			Diagnostics: bagToCached(res.Bag),
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Point(tr, trace.ScopeModule, "cache-put-failed", err.Error(), span.ID())
		}
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StagePrint, Status: StatusDone})
	return res
}

// finishBag схлопывает повторы (тот же код, место и текст) и сортирует по позиции.
func finishBag(b *diag.Bag) {
	b.Dedup()
	b.Sort()
}

// reportNormalize turns the pass report into diagnostics: NRM4001 warnings
// for outputs left unresolved and, with Explain, NRM4002 notes.
func reportNormalize(r diag.Reporter, res *normalize.Result, opts Options) {
	if opts.WarnUnresolved {
		for _, u := range res.Unresolved {
			what := "omitted region"
			if u.Anonymous {
				what = "anonymous region '_"
			}
			msg := fmt.Sprintf("%s in the output of %s cannot be elided: %s", what, u.Qualified(), unresolvedReason(u.Collected))
			diag.ReportWarning(r, diag.NrmUnresolvedOutputRegion, u.Span, msg).Emit()
		}
	}
	if !opts.Explain {
		return
	}
	for _, h := range res.Headers {
		if len(h.Generated) == 0 {
			continue
		}
		msg := fmt.Sprintf("impl %s: introduced %s", h.SelfTy, regionList(h.Generated))
		diag.NewReportBuilder(r, diag.SevInfo, diag.NrmGeneratedRegion, h.Span, msg).Emit()
	}
	for _, s := range res.Signatures {
		if len(s.Generated) == 0 && s.Region == "" {
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "fn %s:", s.Qualified())
		if len(s.Generated) > 0 {
			fmt.Fprintf(&sb, " introduced %s", regionList(s.Generated))
		}
		if s.Region != "" {
			if len(s.Generated) > 0 {
				sb.WriteString(";")
			}
			fmt.Fprintf(&sb, " output uses '%s (%s)", s.Region, s.Rule)
		}
		diag.NewReportBuilder(r, diag.SevInfo, diag.NrmGeneratedRegion, s.Span, sb.String()).Emit()
	}
}

func unresolvedReason(c normalize.CollectState) string {
	if c == normalize.CollectMultiple {
		return "several input regions and no reference receiver"
	}
	return "no input carries a region"
}

func regionList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n
	}
	return strings.Join(quoted, ", ")
}
