package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"regionorm/internal/diagfmt"
	"regionorm/internal/driver"
	"regionorm/internal/normalize"
	"regionorm/internal/source"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] file.rsig",
	Short: "Show what normalization does to each signature",
	Long: `Inspect normalizes a file without printing it and reports, per impl header
and signature, the regions introduced, the elision rule applied and the
output positions left unresolved.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

type positionJSON struct {
	Line uint32 `json:"line" yaml:"line"`
	Col  uint32 `json:"col" yaml:"col"`
}

type headerJSON struct {
	SelfTy    string       `json:"self_ty" yaml:"self_ty"`
	Pos       positionJSON `json:"pos" yaml:"pos"`
	Generated []string     `json:"generated" yaml:"generated"`
}

type signatureJSON struct {
	Name      string       `json:"name" yaml:"name"`
	Pos       positionJSON `json:"pos" yaml:"pos"`
	Generated []string     `json:"generated" yaml:"generated"`
	Rule      string       `json:"rule" yaml:"rule"`
	Region    string       `json:"region,omitempty" yaml:"region,omitempty"`
	Elided    int          `json:"elided" yaml:"elided"`
	Inputs    string       `json:"inputs" yaml:"inputs"`
}

type unresolvedJSON struct {
	Signature string       `json:"signature" yaml:"signature"`
	Pos       positionJSON `json:"pos" yaml:"pos"`
	Anonymous bool         `json:"anonymous" yaml:"anonymous"`
	Inputs    string       `json:"inputs" yaml:"inputs"`
}

type inspectReport struct {
	Path        string                    `json:"path" yaml:"path"`
	Headers     []headerJSON              `json:"headers" yaml:"headers"`
	Signatures  []signatureJSON           `json:"signatures" yaml:"signatures"`
	Unresolved  []unresolvedJSON          `json:"unresolved" yaml:"unresolved"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics" yaml:"diagnostics"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "yaml":
	default:
		return errInvalidChoice("--format", format, "pretty|json|yaml")
	}

	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	// отчёт нужен целиком, кэш его не хранит
	s.opts.Cache = nil

	fileSet, res, err := driver.NormalizeFile(cmd.Context(), args[0], s.opts)
	if err != nil {
		return err
	}

	if format == "pretty" {
		printDiagnostics(cmd.ErrOrStderr(), fileSet, []driver.FileResult{*res}, s)
		if res.Report != nil {
			renderInspectPretty(cmd.OutOrStdout(), fileSet, res.Path, res.Report)
		}
	} else {
		report := buildInspectReport(fileSet, res)
		if err := encodeReport(cmd.OutOrStdout(), format, report); err != nil {
			return err
		}
	}
	return failureError([]driver.FileResult{*res})
}

func buildInspectReport(fileSet *source.FileSet, res *driver.FileResult) inspectReport {
	report := inspectReport{
		Path:        res.Path,
		Headers:     []headerJSON{},
		Signatures:  []signatureJSON{},
		Unresolved:  []unresolvedJSON{},
		Diagnostics: diagfmt.BuildDiagnosticsOutput(res.Bag, fileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}),
	}
	if res.Report == nil {
		return report
	}
	for _, h := range res.Report.Headers {
		report.Headers = append(report.Headers, headerJSON{
			SelfTy:    h.SelfTy,
			Pos:       position(fileSet, h.Span),
			Generated: quoted(h.Generated),
		})
	}
	for _, sig := range res.Report.Signatures {
		sj := signatureJSON{
			Name:      sig.Qualified(),
			Pos:       position(fileSet, sig.Span),
			Generated: quoted(sig.Generated),
			Rule:      sig.Rule.String(),
			Elided:    sig.Elided,
			Inputs:    sig.Collected.String(),
		}
		if sig.Region != "" {
			sj.Region = "'" + sig.Region
		}
		report.Signatures = append(report.Signatures, sj)
	}
	for _, u := range res.Report.Unresolved {
		report.Unresolved = append(report.Unresolved, unresolvedJSON{
			Signature: u.Qualified(),
			Pos:       position(fileSet, u.Span),
			Anonymous: u.Anonymous,
			Inputs:    u.Collected.String(),
		})
	}
	return report
}

func renderInspectPretty(out io.Writer, fileSet *source.FileSet, path string, report *normalize.Result) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	rule := color.New(color.FgCyan)
	warn := color.New(color.FgYellow)

	bold.Fprintln(out, path)
	for _, h := range report.Headers {
		pos := position(fileSet, h.Span)
		fmt.Fprintf(out, "  %s impl %s", faint.Sprintf("%d:%d", pos.Line, pos.Col), h.SelfTy)
		if len(h.Generated) > 0 {
			fmt.Fprintf(out, "  +%s", strings.Join(quoted(h.Generated), ", "))
		}
		fmt.Fprintln(out)
	}
	for _, sig := range report.Signatures {
		pos := position(fileSet, sig.Span)
		fmt.Fprintf(out, "  %s fn %s  %s", faint.Sprintf("%d:%d", pos.Line, pos.Col), sig.Qualified(), rule.Sprint(sig.Rule))
		if sig.Region != "" {
			fmt.Fprintf(out, " '%s x%d", sig.Region, sig.Elided)
		}
		if len(sig.Generated) > 0 {
			fmt.Fprintf(out, "  +%s", strings.Join(quoted(sig.Generated), ", "))
		}
		fmt.Fprintln(out)
	}
	if len(report.Unresolved) == 0 {
		return
	}
	warn.Fprintf(out, "  %d unresolved\n", len(report.Unresolved))
	for _, u := range report.Unresolved {
		pos := position(fileSet, u.Span)
		kind := "omitted"
		if u.Anonymous {
			kind = "'_"
		}
		fmt.Fprintf(out, "    %s %s in %s (inputs: %s)\n", faint.Sprintf("%d:%d", pos.Line, pos.Col), kind, u.Qualified(), u.Collected)
	}
}

func position(fileSet *source.FileSet, span source.Span) positionJSON {
	start, _ := fileSet.Resolve(span)
	return positionJSON{Line: start.Line, Col: start.Col}
}

func quoted(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "'" + n
	}
	return out
}
