package ast

import "regionorm/internal/source"

// GenericParamKind enumerates generic parameter forms.
type GenericParamKind uint8

const (
	GenericLifetime GenericParamKind = iota
	GenericType
	GenericConst
)

// GenericParam is one entry of a generics list: 'a: 'b, T: Clone = u8, const N: usize.
type GenericParam struct {
	Kind           GenericParamKind
	Name           string // без апострофа для lifetime
	LifetimeBounds []*Lifetime
	Bounds         []*Bound
	Default        *Type
	ConstType      *Type
	Span           source.Span
}

// NewLifetimeParam declares the region name.
func NewLifetimeParam(name string) *GenericParam {
	return &GenericParam{Kind: GenericLifetime, Name: name}
}

// Generics is an ordered generics list plus an optional where clause.
// Span is empty when the declaration had no <...> list.
type Generics struct {
	Params []*GenericParam
	Where  []*WherePredicate
	Span   source.Span
}

// Insert puts p at position index, shifting later params right.
// An index past the end appends.
func (g *Generics) Insert(index int, p *GenericParam) {
	if index >= len(g.Params) {
		g.Params = append(g.Params, p)
		return
	}
	if index < 0 {
		index = 0
	}
	g.Params = append(g.Params, nil)
	copy(g.Params[index+1:], g.Params[index:])
	g.Params[index] = p
}

// Lifetimes returns the names of every region parameter in declaration order.
func (g *Generics) Lifetimes() []string {
	if g == nil {
		return nil
	}
	var out []string
	for _, p := range g.Params {
		if p.Kind == GenericLifetime {
			out = append(out, p.Name)
		}
	}
	return out
}

// HasLifetime reports whether a region parameter named name is declared.
func (g *Generics) HasLifetime(name string) bool {
	if g == nil {
		return false
	}
	for _, p := range g.Params {
		if p.Kind == GenericLifetime && p.Name == name {
			return true
		}
	}
	return false
}

// WherePredicate is T: A + B or 'a: 'b.
type WherePredicate struct {
	Lifetime       *Lifetime // set for region predicates
	Type           *Type     // set for type predicates
	Bounds         []*Bound
	LifetimeBounds []*Lifetime
	Span           source.Span
}
