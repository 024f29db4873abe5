package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"regionorm/internal/ast"
	"regionorm/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within the content of sf
// 2) every top-level item span is non-empty and inside file.Span
// 3) every positioned type, path and region lies inside its top-level item
//
// Nodes without a position (regions introduced by normalization) are skipped.
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	if len(f.Items) > 0 && f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}

	for i, it := range f.Items {
		if it == nil {
			return fmt.Errorf("nil item at %d", i)
		}
		sp := it.Span
		if sp.Empty() {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		if err := checkNested(it); err != nil {
			return err
		}
	}
	return nil
}

func checkNested(it *ast.Item) error {
	var bad error
	ast.Inspect(it, func(n ast.Node) bool {
		if bad != nil {
			return false
		}
		var (
			sp   source.Span
			what string
		)
		switch n := n.(type) {
		case *ast.Type:
			sp, what = n.Span, "type "+ast.TypeString(n)
		case *ast.Path:
			sp, what = n.Span, "path"
		case *ast.Lifetime:
			sp, what = n.Span, "region "+n.String()
		default:
			return true
		}
		if sp.Empty() {
			return true
		}
		if sp.File != it.Span.File || !it.Span.Contains(sp) {
			bad = fmt.Errorf("%s at %v is outside item span %v", what, sp, it.Span)
			return false
		}
		return true
	})
	return bad
}
