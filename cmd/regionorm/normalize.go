package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"regionorm/internal/diagfmt"
	"regionorm/internal/driver"
	"regionorm/internal/observ"
	"regionorm/internal/source"
	"regionorm/internal/ui"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [flags] [file.rsig|dir|-]",
	Short: "Name every region in impl headers and signatures",
	Long: `Normalize rewrites impl headers and function signatures so that every
region is named. Directories are processed in parallel; "-" reads stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().BoolP("write", "w", false, "write result back to the source files")
	normalizeCmd.Flags().String("format", "text", "output format (text|json|yaml)")
	normalizeCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	normalizeCmd.Flags().Bool("explain", false, "report every introduced region as an info diagnostic")
	normalizeCmd.Flags().IntP("jobs", "j", 0, "parallel workers (0 = from config or GOMAXPROCS)")
	normalizeCmd.Flags().Bool("no-cache", false, "bypass the disk cache")
}

// fileReport is one file in json/yaml output.
type fileReport struct {
	Path        string                    `json:"path" yaml:"path"`
	Changed     bool                      `json:"changed" yaml:"changed"`
	Cached      bool                      `json:"cached" yaml:"cached"`
	Summary     driver.Summary            `json:"summary" yaml:"summary"`
	Output      string                    `json:"output,omitempty" yaml:"output,omitempty"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics" yaml:"diagnostics"`
}

type normalizeReport struct {
	Files   []fileReport   `json:"files" yaml:"files"`
	Timings *observ.Report `json:"timings,omitempty" yaml:"timings,omitempty"`
}

type normalizeFlags struct {
	write   bool
	format  string
	ui      uiMode
	explain bool
	jobs    int
	noCache bool
}

func readNormalizeFlags(cmd *cobra.Command) (normalizeFlags, error) {
	var (
		nf  normalizeFlags
		err error
	)
	if nf.write, err = cmd.Flags().GetBool("write"); err != nil {
		return nf, fmt.Errorf("failed to get write flag: %w", err)
	}
	if nf.format, err = cmd.Flags().GetString("format"); err != nil {
		return nf, fmt.Errorf("failed to get format flag: %w", err)
	}
	nf.format = strings.ToLower(nf.format)
	switch nf.format {
	case "text", "json", "yaml":
	default:
		return nf, errInvalidChoice("--format", nf.format, "text|json|yaml")
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if nf.ui, err = readUIMode(uiValue); err != nil {
		return nf, err
	}
	if nf.explain, err = cmd.Flags().GetBool("explain"); err != nil {
		return nf, fmt.Errorf("failed to get explain flag: %w", err)
	}
	if nf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return nf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if nf.jobs < 0 {
		return nf, fmt.Errorf("--jobs must be >= 0, got %d", nf.jobs)
	}
	if nf.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return nf, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	return nf, nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	nf, err := readNormalizeFlags(cmd)
	if err != nil {
		return err
	}
	if nf.write && target == "-" {
		return errors.New("--write cannot be used with stdin")
	}

	startDir := target
	if target == "-" {
		startDir = "."
	}
	s, err := loadSettings(cmd, startDir)
	if err != nil {
		return err
	}
	s.opts.Explain = nf.explain
	if nf.jobs > 0 {
		s.opts.Jobs = nf.jobs
	}

	ctx := cmd.Context()
	var (
		fileSet *source.FileSet
		results []driver.FileResult
		multi   bool
	)
	switch {
	case target == "-":
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		res := driver.NormalizeSource(ctx, "<stdin>", src, s.opts)
		fileSet, results = res.FileSet, []driver.FileResult{res.FileResult}
	default:
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("failed to stat %q: %w", target, err)
		}
		s.openCache(cmd, nf.noCache)
		if info.IsDir() {
			multi = true
			fileSet, results, err = normalizeDir(cmd, target, s, nf)
			if err != nil {
				return err
			}
		} else {
			var res *driver.FileResult
			fileSet, res, err = driver.NormalizeFile(ctx, target, s.opts)
			if err != nil {
				return err
			}
			results = []driver.FileResult{*res}
		}
	}

	if nf.write {
		if err := writeBack(cmd.ErrOrStderr(), results, s.quiet); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch nf.format {
	case "json", "yaml":
		report := buildNormalizeReport(fileSet, results, s, !nf.write)
		if err := encodeReport(out, nf.format, report); err != nil {
			return err
		}
	default:
		printDiagnostics(cmd.ErrOrStderr(), fileSet, results, s)
		if !nf.write {
			printOutputs(out, results, multi)
		}
		if s.timings {
			fmt.Fprint(cmd.ErrOrStderr(), formatTimings(driver.TimingReport(results)))
		}
	}

	return failureError(results)
}

func normalizeDir(cmd *cobra.Command, dir string, s *settings, nf normalizeFlags) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %q: %w", dir, err)
	}
	if len(files) == 0 {
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "no %s files in %s\n", driver.FileExt, dir)
		}
		return source.NewFileSetWithBase(dir), nil, nil
	}

	ctx := cmd.Context()
	if s.quiet || !shouldUseTUI(nf.ui) {
		return driver.NormalizeFiles(ctx, dir, files, s.opts)
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	err = ui.RunProgress(cmd.ErrOrStderr(), "normalize "+dir, files, func(sink driver.ProgressSink) error {
		opts := s.opts
		opts.Progress = sink
		var runErr error
		fileSet, results, runErr = driver.NormalizeFiles(ctx, dir, files, opts)
		return runErr
	})
	return fileSet, results, err
}

// writeBack replaces changed files with their normalized text. Files with
// errors are left alone.
func writeBack(log io.Writer, results []driver.FileResult, quiet bool) error {
	for i := range results {
		res := &results[i]
		if res.Failed() || !res.Changed {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(res.Path); err == nil {
			mode = info.Mode().Perm()
		}
		if err := writeFileAtomic(res.Path, []byte(res.Output), mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", res.Path, err)
		}
		if !quiet {
			fmt.Fprintf(log, "normalized %s\n", res.Path)
		}
	}
	return nil
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".regionorm-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func printDiagnostics(w io.Writer, fileSet *source.FileSet, results []driver.FileResult, s *settings) {
	for i := range results {
		bag := results[i].Bag
		if bag == nil || bag.Len() == 0 {
			continue
		}
		if s.quiet && !bag.HasErrors() {
			continue
		}
		diagfmt.Pretty(w, bag, fileSet, s.pretty)
	}
}

// printOutputs пишет нормализованный текст; для каталога каждый файл
// предваряется заголовком с путём
func printOutputs(w io.Writer, results []driver.FileResult, multi bool) {
	for i := range results {
		res := &results[i]
		if res.Failed() {
			continue
		}
		if multi {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "// %s\n", res.Path)
		}
		io.WriteString(w, res.Output)
	}
}

func buildNormalizeReport(fileSet *source.FileSet, results []driver.FileResult, s *settings, withOutput bool) normalizeReport {
	report := normalizeReport{Files: make([]fileReport, 0, len(results))}
	jsonOpts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}
	for i := range results {
		res := &results[i]
		fr := fileReport{
			Path:        res.Path,
			Changed:     res.Changed,
			Cached:      res.Cached,
			Summary:     res.Summary,
			Diagnostics: diagfmt.BuildDiagnosticsOutput(res.Bag, fileSet, jsonOpts),
		}
		if withOutput && !res.Failed() {
			fr.Output = res.Output
		}
		report.Files = append(report.Files, fr)
	}
	if s.timings {
		timing := driver.TimingReport(results)
		report.Timings = &timing
	}
	return report
}

func encodeReport(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func failureError(results []driver.FileResult) error {
	failed := 0
	for i := range results {
		if results[i].Failed() {
			failed++
		}
	}
	switch failed {
	case 0:
		return nil
	case 1:
		return errors.New("1 file could not be normalized")
	default:
		return fmt.Errorf("%d files could not be normalized", failed)
	}
}
