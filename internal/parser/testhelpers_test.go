package parser

import (
	"fmt"
	"strings"
	"testing"

	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/lexer"
	"regionorm/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rsig", []byte(src))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep, KeepTrivia: true})
	return ParseFile(lx, Options{Reporter: rep}), bag
}

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return f
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func firstFn(t *testing.T, f *ast.File) *ast.Signature {
	t.Helper()
	for _, it := range f.Items {
		switch data := it.Data.(type) {
		case *ast.FnData:
			return data.Sig
		case *ast.ImplData:
			for _, m := range data.Items {
				if fn, ok := m.Data.(*ast.FnData); ok {
					return fn.Sig
				}
			}
		case *ast.TraitData:
			for _, m := range data.Items {
				if fn, ok := m.Data.(*ast.FnData); ok {
					return fn.Sig
				}
			}
		}
	}
	t.Fatal("no function in file")
	return nil
}
