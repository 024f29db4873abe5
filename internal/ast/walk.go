package ast

// Node is any element of the tree that Walk can visit.
type Node interface {
	node()
}

func (*Type) node()         {}
func (*Lifetime) node()     {}
func (*Path) node()         {}
func (*PathSegment) node()  {}
func (*AngleArgs) node()    {}
func (*ParenArgs) node()    {}
func (*GenericArg) node()   {}
func (*GenericParam) node() {}
func (*Bound) node()        {}
func (*Expr) node()         {}
func (*Item) node()         {}
func (*Signature) node()    {}
func (*FnArg) node()        {}
func (*Receiver) node()     {}
func (*TypedArg) node()     {}
func (*BareFnParam) node()  {}

// Visitor is driven by Walk. Enter is called before the children of a node;
// returning false skips them and the matching Leave. Leave is called after
// the children, which lets a visitor act in post-order.
type Visitor interface {
	Enter(n Node) bool
	Leave(n Node)
}

// OpensInnerScope reports whether regions below n belong to a scope other
// than the enclosing signature: nested items, function pointer types and
// parenthesized callback arguments.
func OpensInnerScope(n Node) bool {
	switch n := n.(type) {
	case *Item, *ParenArgs:
		return true
	case *Type:
		return n.Kind == TypeBareFn
	default:
		return false
	}
}

// Walk traverses n depth-first. Lifetimes are visited in source order, so a
// reference's own lifetime comes before the lifetimes of its target type.
func Walk(v Visitor, n Node) {
	if isNilNode(n) || !v.Enter(n) {
		return
	}
	switch n := n.(type) {
	case *Type:
		walkTypeChildren(v, n)
	case *Lifetime:
		// leaf
	case *Path:
		for _, seg := range n.Segments {
			Walk(v, seg)
		}
	case *PathSegment:
		if n.Angle != nil {
			Walk(v, n.Angle)
		}
		if n.Paren != nil {
			Walk(v, n.Paren)
		}
	case *AngleArgs:
		for _, arg := range n.Args {
			Walk(v, arg)
		}
	case *ParenArgs:
		walkTypes(v, n.Inputs)
		walkOptType(v, n.Output)
	case *GenericArg:
		walkOptType(v, n.Type)
		if n.Lifetime != nil {
			Walk(v, n.Lifetime)
		}
		if n.Const != nil {
			Walk(v, n.Const)
		}
	case *GenericParam:
		walkLifetimes(v, n.LifetimeBounds)
		walkBounds(v, n.Bounds)
		walkOptType(v, n.Default)
		walkOptType(v, n.ConstType)
	case *Bound:
		for _, p := range n.ForLifetimes {
			Walk(v, p)
		}
		if n.Trait != nil {
			Walk(v, n.Trait)
		}
		if n.Lifetime != nil {
			Walk(v, n.Lifetime)
		}
	case *Expr:
		for _, it := range n.Items {
			Walk(v, it)
		}
	case *Item:
		walkItemChildren(v, n)
	case *Signature:
		for _, arg := range n.Inputs {
			Walk(v, arg)
		}
		walkOptType(v, n.Output)
	case *FnArg:
		if n.Receiver != nil {
			Walk(v, n.Receiver)
		}
		if n.Typed != nil {
			Walk(v, n.Typed)
		}
	case *Receiver:
		if n.Lifetime != nil {
			Walk(v, n.Lifetime)
		}
		walkOptType(v, n.Type)
	case *TypedArg:
		walkOptType(v, n.Type)
	case *BareFnParam:
		walkOptType(v, n.Type)
	}
	v.Leave(n)
}

func walkTypeChildren(v Visitor, t *Type) {
	switch data := t.Data.(type) {
	case *PathData:
		if data.Path != nil {
			Walk(v, data.Path)
		}
	case *RefData:
		if data.Lifetime != nil {
			Walk(v, data.Lifetime)
		}
		walkOptType(v, data.Elem)
	case *PtrData:
		walkOptType(v, data.Elem)
	case *SliceData:
		walkOptType(v, data.Elem)
	case *ArrayData:
		walkOptType(v, data.Elem)
		if data.Len != nil {
			Walk(v, data.Len)
		}
	case *TupleData:
		walkTypes(v, data.Elems)
	case *ParenData:
		walkOptType(v, data.Elem)
	case *BareFnData:
		for _, p := range data.ForLifetimes {
			Walk(v, p)
		}
		for _, p := range data.Params {
			Walk(v, p)
		}
		walkOptType(v, data.Output)
	case *BoundsData:
		walkBounds(v, data.Bounds)
	}
}

func walkItemChildren(v Visitor, it *Item) {
	switch data := it.Data.(type) {
	case *ImplData:
		if data.Trait != nil {
			Walk(v, data.Trait)
		}
		walkOptType(v, data.SelfTy)
		for _, member := range data.Items {
			Walk(v, member)
		}
	case *TraitData:
		walkBounds(v, data.Supertraits)
		for _, member := range data.Items {
			Walk(v, member)
		}
	case *FnData:
		if data.Sig != nil {
			Walk(v, data.Sig)
		}
	case *ConstData:
		walkOptType(v, data.Type)
	case *TypeAliasData:
		walkBounds(v, data.Bounds)
		walkOptType(v, data.Type)
	}
}

func walkOptType(v Visitor, t *Type) {
	if t != nil {
		Walk(v, t)
	}
}

func walkTypes(v Visitor, ts []*Type) {
	for _, t := range ts {
		walkOptType(v, t)
	}
}

func walkBounds(v Visitor, bs []*Bound) {
	for _, b := range bs {
		if b != nil {
			Walk(v, b)
		}
	}
}

func walkLifetimes(v Visitor, lts []*Lifetime) {
	for _, lt := range lts {
		if lt != nil {
			Walk(v, lt)
		}
	}
}

// isNilNode ловит типизированные nil-указатели внутри интерфейса.
func isNilNode(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Type:
		return n == nil
	case *Lifetime:
		return n == nil
	case *Item:
		return n == nil
	case *FnArg:
		return n == nil
	case *Signature:
		return n == nil
	}
	return false
}

type inspector func(Node) bool

func (f inspector) Enter(n Node) bool { return f(n) }
func (f inspector) Leave(Node)        {}

// Inspect calls f for every node in pre-order; f returning false prunes the subtree.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}
