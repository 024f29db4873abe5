package normalize

import (
	"strconv"

	"regionorm/internal/ast"
)

// regionAssigner gives every anonymous or omitted region it visits a fresh
// name and declares it in generics. Indices start at 0 per assigner and the
// declaration for index i is inserted at position i, so generated regions
// come first and in discovery order.
type regionAssigner struct {
	prefix   string
	generics *ast.Generics
	next     int
	assigned []string
	onAssign func(name string, lt *ast.Lifetime)
}

func newRegionAssigner(prefix string, g *ast.Generics) *regionAssigner {
	return &regionAssigner{prefix: prefix, generics: g}
}

func (a *regionAssigner) fresh() *ast.Lifetime {
	index := a.next
	a.next++
	name := a.prefix + strconv.Itoa(index)
	a.generics.Insert(index, ast.NewLifetimeParam(name))
	a.assigned = append(a.assigned, name)
	lt := ast.NewLifetime(name)
	if a.onAssign != nil {
		a.onAssign(name, lt)
	}
	return lt
}

func (a *regionAssigner) Enter(n ast.Node) bool {
	if ast.OpensInnerScope(n) {
		return false
	}
	switch n := n.(type) {
	case *ast.Lifetime:
		if n.IsAnonymous() {
			n.Name = a.fresh().Name
		}
	case *ast.Receiver:
		a.receiver(n)
		return false
	}
	return true
}

// Leave fills omitted reference regions after the referent was visited:
// in & &T the inner reference is named first.
func (a *regionAssigner) Leave(n ast.Node) {
	t, ok := n.(*ast.Type)
	if !ok {
		return
	}
	if ref, ok := t.Ref(); ok && ref.Lifetime == nil {
		ref.Lifetime = a.fresh()
	}
}

// receiver handles self. self: T is an ordinary type; &self and &'_ self get
// one region shared by the receiver and its &Self type; self and &'a self
// stay as written.
func (a *regionAssigner) receiver(r *ast.Receiver) {
	switch r.Form {
	case ast.ReceiverTyped:
		if r.Type != nil {
			ast.Walk(a, r.Type)
		}
	case ast.ReceiverRef:
		if r.Lifetime != nil && !r.Lifetime.IsAnonymous() {
			return
		}
		ref, ok := r.Type.Ref()
		if !ok {
			return
		}
		lt := a.fresh()
		if r.Lifetime != nil {
			lt.Span = r.Lifetime.Span
		}
		r.Lifetime = lt
		ref.Lifetime = lt.Clone()
	}
}

// AssignRegions runs one assigner over nodes and returns the generated names
// in index order.
func AssignRegions(prefix string, g *ast.Generics, nodes ...ast.Node) []string {
	a := newRegionAssigner(prefix, g)
	for _, n := range nodes {
		ast.Walk(a, n)
	}
	return a.assigned
}
