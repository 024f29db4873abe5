package ast

import "regionorm/internal/source"

// TypeKind enumerates type expression forms.
type TypeKind uint8

const (
	// TypePath is a possibly qualified path with generic arguments: a::B<'a, T>.
	TypePath TypeKind = iota
	// TypeRef is a reference &'r mut T; the lifetime may be omitted.
	TypeRef
	// TypePtr is a raw pointer *const T / *mut T.
	TypePtr
	// TypeSlice is [T].
	TypeSlice
	// TypeArray is [T; N].
	TypeArray
	// TypeTuple is (A, B) or the unit type ().
	TypeTuple
	// TypeParen is a parenthesized type (T).
	TypeParen
	// TypeBareFn is a function pointer type; it opens an inner region scope.
	TypeBareFn
	// TypeTraitObject is dyn A + 'r.
	TypeTraitObject
	// TypeImplTrait is impl A + 'r.
	TypeImplTrait
	// TypeNever is !.
	TypeNever
	// TypeInfer is _.
	TypeInfer
)

func (k TypeKind) String() string {
	switch k {
	case TypePath:
		return "Path"
	case TypeRef:
		return "Ref"
	case TypePtr:
		return "Ptr"
	case TypeSlice:
		return "Slice"
	case TypeArray:
		return "Array"
	case TypeTuple:
		return "Tuple"
	case TypeParen:
		return "Paren"
	case TypeBareFn:
		return "BareFn"
	case TypeTraitObject:
		return "TraitObject"
	case TypeImplTrait:
		return "ImplTrait"
	case TypeNever:
		return "Never"
	case TypeInfer:
		return "Infer"
	default:
		return "Unknown"
	}
}

// Type is a type expression. Data is nil for TypeNever and TypeInfer.
type Type struct {
	Kind TypeKind
	Span source.Span
	Data TypeData
}

// TypeData is the kind-specific payload of a Type.
type TypeData interface {
	typeData()
}

// PathData holds data for TypePath.
type PathData struct {
	Path *Path
}

// RefData holds data for TypeRef. Lifetime is nil when omitted.
type RefData struct {
	Lifetime *Lifetime
	Mut      bool
	Elem     *Type
}

// PtrData holds data for TypePtr.
type PtrData struct {
	Mut  bool
	Elem *Type
}

// SliceData holds data for TypeSlice.
type SliceData struct {
	Elem *Type
}

// ArrayData holds data for TypeArray.
type ArrayData struct {
	Elem *Type
	Len  *Expr
}

// TupleData holds data for TypeTuple.
type TupleData struct {
	Elems []*Type
}

// ParenData holds data for TypeParen.
type ParenData struct {
	Elem *Type
}

// BareFnData holds data for TypeBareFn.
type BareFnData struct {
	ForLifetimes []*GenericParam // for<'a>
	Unsafe       bool
	ABI          string // `extern "C"`: the quoted text, or "" without extern
	Extern       bool
	Params       []*BareFnParam
	Variadic     bool
	Output       *Type
}

// BareFnParam is one parameter of a function pointer type.
type BareFnParam struct {
	Name string // может быть пустым
	Type *Type
	Span source.Span
}

// BoundsData holds data for TypeTraitObject and TypeImplTrait.
type BoundsData struct {
	Bounds []*Bound
}

func (*PathData) typeData()   {}
func (*RefData) typeData()    {}
func (*PtrData) typeData()    {}
func (*SliceData) typeData()  {}
func (*ArrayData) typeData()  {}
func (*TupleData) typeData()  {}
func (*ParenData) typeData()  {}
func (*BareFnData) typeData() {}
func (*BoundsData) typeData() {}

// Ref returns the reference payload when t is a TypeRef.
func (t *Type) Ref() (*RefData, bool) {
	if t == nil || t.Kind != TypeRef {
		return nil, false
	}
	data, ok := t.Data.(*RefData)
	return data, ok
}

// NewRef builds a reference type around elem.
func NewRef(lifetime *Lifetime, mut bool, elem *Type) *Type {
	return &Type{Kind: TypeRef, Data: &RefData{Lifetime: lifetime, Mut: mut, Elem: elem}}
}

// NewPathType builds a single segment path type without arguments.
func NewPathType(name string, sp source.Span) *Type {
	return &Type{Kind: TypePath, Span: sp, Data: &PathData{Path: &Path{
		Segments: []*PathSegment{{Name: name, Span: sp}},
		Span:     sp,
	}}}
}

// Path is a :: separated path.
type Path struct {
	Global   bool // leading ::
	Segments []*PathSegment
	Span     source.Span
}

// PathSegment is one path element with optional arguments.
// At most one of Angle and Paren is set.
type PathSegment struct {
	Name  string
	Span  source.Span
	Angle *AngleArgs
	Paren *ParenArgs
}

// AngleArgs is the <...> argument list of a path segment.
type AngleArgs struct {
	Turbofish bool // ::<...>
	Args      []*GenericArg
	Span      source.Span
}

// ParenArgs is the (A, B) -> C argument list of Fn-like traits.
// It opens an inner region scope.
type ParenArgs struct {
	Inputs []*Type
	Output *Type
	Span   source.Span
}

// GenericArgKind enumerates generic argument forms.
type GenericArgKind uint8

const (
	ArgType GenericArgKind = iota
	ArgLifetime
	ArgBinding // Item = T
	ArgConst   // { N + 1 } or a literal
)

// GenericArg is one element of AngleArgs.
type GenericArg struct {
	Kind     GenericArgKind
	Type     *Type     // ArgType, ArgBinding
	Lifetime *Lifetime // ArgLifetime
	Name     string    // ArgBinding
	Const    *Expr     // ArgConst
	Span     source.Span
}

// BoundKind enumerates bound forms.
type BoundKind uint8

const (
	BoundTrait BoundKind = iota
	BoundLifetime
)

// Bound is a trait or lifetime bound: Clone, ?Sized, for<'a> Fn(&'a u8), 'a.
type Bound struct {
	Kind         BoundKind
	Maybe        bool // ?Sized
	ForLifetimes []*GenericParam
	Trait        *Path
	Paren        bool // (Trait)
	Lifetime     *Lifetime
	Span         source.Span
}

// ExprKind enumerates the expression forms allowed in types.
type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprPath
	ExprBlock
)

// Expr is a constant expression inside a type: an array length or a const
// generic argument. Block expressions may declare nested items, which open
// their own scope.
type Expr struct {
	Kind  ExprKind
	Text  string  // literal / path text, or the block's trailing expression
	Items []*Item // ExprBlock only
	Span  source.Span
}
