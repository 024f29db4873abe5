package normalize_test

import (
	"strings"
	"testing"

	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/lexer"
	"regionorm/internal/parser"
	"regionorm/internal/source"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rsig", []byte(src))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	f := parser.ParseFile(lexer.New(fs.Get(id), lexer.Options{Reporter: rep, KeepTrivia: true}), parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		msgs := make([]string, 0, bag.Len())
		for _, d := range bag.Items() {
			msgs = append(msgs, d.Code.ID()+" "+d.Message)
		}
		t.Fatalf("parse %q: %s", src, strings.Join(msgs, "; "))
	}
	return f
}

func signatures(f *ast.File) []*ast.Signature {
	var out []*ast.Signature
	for _, it := range f.Items {
		switch data := it.Data.(type) {
		case *ast.FnData:
			out = append(out, data.Sig)
		case *ast.ImplData:
			out = appendMemberSigs(out, data.Items)
		case *ast.TraitData:
			out = appendMemberSigs(out, data.Items)
		}
	}
	return out
}

func appendMemberSigs(out []*ast.Signature, items []*ast.Item) []*ast.Signature {
	for _, m := range items {
		if fn, ok := m.Data.(*ast.FnData); ok {
			out = append(out, fn.Sig)
		}
	}
	return out
}
