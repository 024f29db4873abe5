package normalize

import "regionorm/internal/ast"

type outputElider struct {
	region *ast.Lifetime
	filled int
}

func (e *outputElider) Enter(n ast.Node) bool {
	if ast.OpensInnerScope(n) {
		return false
	}
	if lt, ok := n.(*ast.Lifetime); ok && lt.IsAnonymous() {
		lt.Name = e.region.Name
		e.filled++
	}
	return true
}

func (e *outputElider) Leave(n ast.Node) {
	t, ok := n.(*ast.Type)
	if !ok {
		return
	}
	if ref, ok := t.Ref(); ok && ref.Lifetime == nil {
		ref.Lifetime = &ast.Lifetime{Name: e.region.Name}
		e.filled++
	}
}

// ElideOutput replaces every '_ in out with region and gives region to every
// reference without one. It returns the number of rewritten positions.
func ElideOutput(region *ast.Lifetime, out *ast.Type) int {
	if region == nil || out == nil {
		return 0
	}
	e := &outputElider{region: region}
	ast.Walk(e, out)
	return e.filled
}

type unresolvedScanner struct {
	omitted []*ast.Type
	anon    []*ast.Lifetime
}

func (s *unresolvedScanner) Enter(n ast.Node) bool {
	if ast.OpensInnerScope(n) {
		return false
	}
	if lt, ok := n.(*ast.Lifetime); ok && lt.IsAnonymous() {
		s.anon = append(s.anon, lt)
	}
	return true
}

func (s *unresolvedScanner) Leave(n ast.Node) {
	if t, ok := n.(*ast.Type); ok {
		if ref, ok := t.Ref(); ok && ref.Lifetime == nil {
			s.omitted = append(s.omitted, t)
		}
	}
}
