package ast

import "regionorm/internal/source"

// File is one parsed signature file.
type File struct {
	ID       source.FileID
	Items    []*Item
	Comments []string // after the last item
	Span     source.Span
}

// ItemKind enumerates declarations.
type ItemKind uint8

const (
	ItemImpl ItemKind = iota
	ItemTrait
	ItemFn
	ItemConst
	ItemTypeAlias
)

func (k ItemKind) String() string {
	switch k {
	case ItemImpl:
		return "impl"
	case ItemTrait:
		return "trait"
	case ItemFn:
		return "fn"
	case ItemConst:
		return "const"
	case ItemTypeAlias:
		return "type"
	default:
		return "unknown"
	}
}

// Item is a declaration. Kind selects the ItemData type.
// Comments are the comment lines above the item, "" stands for a blank line.
// Comments found inside the declaration are moved there as well.
type Item struct {
	Kind     ItemKind
	Comments []string
	Attrs    []string // #[...] verbatim
	Pub      bool
	PubScope string // crate in pub(crate)
	Span     source.Span
	Data     ItemData
	Trailing string // comment on the same line after the item
}

// ItemData is the kind-specific payload of an Item.
type ItemData interface {
	itemData()
}

// ImplData is an implementing-type header with its members.
type ImplData struct {
	Unsafe   bool
	Generics *Generics
	Negative bool  // impl !Trait for T
	Trait    *Path // nil for inherent impls
	SelfTy   *Type
	Items    []*Item
	Tail     []string // comments before the closing '}'
}

// TraitData is a trait declaration; only its method signatures are normalized.
type TraitData struct {
	Unsafe      bool
	Name        string
	Generics    *Generics
	Supertraits []*Bound
	Items       []*Item
	Tail        []string
}

// FnData is a function or method. Body is nil for declarations ending in ';'.
type FnData struct {
	Sig  *Signature
	Body *Body
}

// ConstData is `const NAME: Type = value;`. Value is raw source, may be empty.
type ConstData struct {
	Name  string
	Type  *Type
	Value string
}

// TypeAliasData is `type Name<G>: Bounds = Type;`. Type is nil for trait declarations.
type TypeAliasData struct {
	Name     string
	Generics *Generics
	Bounds   []*Bound
	Type     *Type
}

func (*ImplData) itemData()      {}
func (*TraitData) itemData()     {}
func (*FnData) itemData()        {}
func (*ConstData) itemData()     {}
func (*TypeAliasData) itemData() {}

// Body is the executable block of a function, kept as raw text and never inspected.
type Body struct {
	Text string
	Span source.Span
}

// Signature is the callable part of a function: generics, inputs and output.
type Signature struct {
	Const    bool
	Unsafe   bool
	Extern   bool
	ABI      string
	Name     string
	NameSpan source.Span
	Generics *Generics
	Inputs   []*FnArg
	Variadic bool
	Output   *Type // nil when there is no -> clause
	Span     source.Span
}

// Receiver returns the leading receiver, if the signature has one.
func (s *Signature) Receiver() *Receiver {
	if s == nil || len(s.Inputs) == 0 {
		return nil
	}
	return s.Inputs[0].Receiver
}

// FnArgKind distinguishes receivers from typed parameters.
type FnArgKind uint8

const (
	ArgReceiver FnArgKind = iota
	ArgTyped
)

// FnArg is one input of a signature. Exactly one of Receiver and Typed is set.
type FnArg struct {
	Kind     FnArgKind
	Receiver *Receiver
	Typed    *TypedArg
	Span     source.Span
}

// TypedArg is `pattern: Type`.
type TypedArg struct {
	Pat  *Pat
	Type *Type
}

// Pat is the binding pattern of a parameter: x, mut x, _.
type Pat struct {
	Name string
	Mut  bool
	Span source.Span
}

// ReceiverForm enumerates the three ways to spell self.
type ReceiverForm uint8

const (
	// ReceiverValue is self or mut self.
	ReceiverValue ReceiverForm = iota
	// ReceiverRef is the &self sugar; Lifetime holds its optional region.
	ReceiverRef
	// ReceiverTyped is self: T.
	ReceiverTyped
)

// Receiver is the self parameter. For the sugar forms Type is synthesized by
// the parser: Self for ReceiverValue and &Self for ReceiverRef, whose region
// mirrors Lifetime.
type Receiver struct {
	Form     ReceiverForm
	Mut      bool // mut self / mut self: T
	RefMut   bool // &mut self
	Lifetime *Lifetime
	Type     *Type
	Span     source.Span
}
