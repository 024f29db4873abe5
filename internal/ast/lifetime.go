package ast

import "regionorm/internal/source"

// AnonymousName is the name of the '_ marker.
const AnonymousName = "_"

// StaticName is the name of the 'static region.
const StaticName = "static"

// Lifetime is a region marker. Name excludes the leading quote.
type Lifetime struct {
	Name string
	Span source.Span
}

// NewLifetime creates a named lifetime without a source position.
func NewLifetime(name string) *Lifetime {
	return &Lifetime{Name: name}
}

// IsAnonymous reports whether the marker is '_ and still has to be resolved.
func (lt *Lifetime) IsAnonymous() bool {
	return lt != nil && lt.Name == AnonymousName
}

// Clone returns a copy that shares nothing with lt.
func (lt *Lifetime) Clone() *Lifetime {
	if lt == nil {
		return nil
	}
	cp := *lt
	return &cp
}

func (lt *Lifetime) String() string {
	if lt == nil {
		return ""
	}
	return "'" + lt.Name
}
