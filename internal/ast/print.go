package ast

import (
	"io"
	"strings"
)

const indentUnit = "    "

type printer struct {
	sb     strings.Builder
	indent int
	bol    bool // отступ ещё не выведен
}

// Fprint writes the canonical rendering of f to w.
func Fprint(w io.Writer, f *File) error {
	_, err := io.WriteString(w, Format(f))
	return err
}

// Format renders f as source text. Top-level items are separated by a blank
// line, members are indented by four spaces and bodies are copied verbatim.
// Comments are kept on their own lines, trailing ones stay after the item.
func Format(f *File) string {
	if f == nil {
		return ""
	}
	var p printer
	for i, it := range f.Items {
		if i > 0 {
			p.newline()
		}
		p.item(it)
		p.newline()
	}
	if len(f.Comments) > 0 {
		if len(f.Items) > 0 {
			p.newline()
		}
		p.comments(f.Comments)
	}
	return p.sb.String()
}

// ItemString renders a single item on its own.
func ItemString(it *Item) string {
	var p printer
	p.item(it)
	return p.sb.String()
}

// TypeString renders a type expression.
func TypeString(t *Type) string {
	var p printer
	p.typ(t)
	return p.sb.String()
}

// SignatureString renders the signature without a body or trailing ';'.
func SignatureString(sig *Signature) string {
	var p printer
	p.signature(sig)
	return p.sb.String()
}

// GenericsString renders the <...> list, or "" when it is empty.
func GenericsString(g *Generics) string {
	var p printer
	p.generics(g)
	return p.sb.String()
}

func (p *printer) str(s string) {
	if p.bol {
		for range p.indent {
			p.sb.WriteString(indentUnit)
		}
		p.bol = false
	}
	p.sb.WriteString(s)
}

func (p *printer) newline() {
	p.sb.WriteString("\n")
	p.bol = true
}

// comments печатает строки комментариев, каждую на своей строке; "" даёт пустую строку.
func (p *printer) comments(lines []string) {
	for _, line := range lines {
		if line != "" {
			p.str(line)
		}
		p.newline()
	}
}

func (p *printer) item(it *Item) {
	if it == nil {
		return
	}
	p.comments(it.Comments)
	p.itemBody(it)
	if it.Trailing != "" {
		p.str(" ")
		p.str(it.Trailing)
	}
}

func (p *printer) itemBody(it *Item) {
	for _, attr := range it.Attrs {
		p.str(attr)
		p.newline()
	}
	if it.Pub {
		p.str("pub")
		if it.PubScope != "" {
			p.str("(" + it.PubScope + ")")
		}
		p.str(" ")
	}
	switch data := it.Data.(type) {
	case *ImplData:
		if data.Unsafe {
			p.str("unsafe ")
		}
		p.str("impl")
		p.generics(data.Generics)
		p.str(" ")
		if data.Trait != nil {
			if data.Negative {
				p.str("!")
			}
			p.path(data.Trait)
			p.str(" for ")
		}
		p.typ(data.SelfTy)
		p.where(data.Generics)
		p.members(data.Items, data.Tail)
	case *TraitData:
		if data.Unsafe {
			p.str("unsafe ")
		}
		p.str("trait ")
		p.str(data.Name)
		p.generics(data.Generics)
		if len(data.Supertraits) > 0 {
			p.str(": ")
			p.bounds(data.Supertraits)
		}
		p.where(data.Generics)
		p.members(data.Items, data.Tail)
	case *FnData:
		p.signature(data.Sig)
		if data.Body != nil {
			p.str(" ")
			p.str(data.Body.Text)
		} else {
			p.str(";")
		}
	case *ConstData:
		p.str("const ")
		p.str(data.Name)
		p.str(": ")
		p.typ(data.Type)
		if data.Value != "" {
			p.str(" = ")
			p.str(data.Value)
		}
		p.str(";")
	case *TypeAliasData:
		p.str("type ")
		p.str(data.Name)
		p.generics(data.Generics)
		if len(data.Bounds) > 0 {
			p.str(": ")
			p.bounds(data.Bounds)
		}
		p.where(data.Generics)
		if data.Type != nil {
			p.str(" = ")
			p.typ(data.Type)
		}
		p.str(";")
	}
}

func (p *printer) members(items []*Item, tail []string) {
	if len(items) == 0 && len(tail) == 0 {
		p.str(" {}")
		return
	}
	p.str(" {")
	p.indent++
	for _, member := range items {
		p.newline()
		p.item(member)
	}
	if len(tail) > 0 {
		p.newline()
		p.comments(tail)
		p.indent--
		p.str("}")
		return
	}
	p.indent--
	p.newline()
	p.str("}")
}

func (p *printer) signature(sig *Signature) {
	if sig == nil {
		return
	}
	if sig.Const {
		p.str("const ")
	}
	if sig.Unsafe {
		p.str("unsafe ")
	}
	if sig.Extern {
		p.str("extern ")
		if sig.ABI != "" {
			p.str(sig.ABI)
			p.str(" ")
		}
	}
	p.str("fn ")
	p.str(sig.Name)
	p.generics(sig.Generics)
	p.str("(")
	for i, arg := range sig.Inputs {
		if i > 0 {
			p.str(", ")
		}
		p.fnArg(arg)
	}
	if sig.Variadic {
		if len(sig.Inputs) > 0 {
			p.str(", ")
		}
		p.str("...")
	}
	p.str(")")
	if sig.Output != nil {
		p.str(" -> ")
		p.typ(sig.Output)
	}
	p.where(sig.Generics)
}

func (p *printer) fnArg(arg *FnArg) {
	if arg == nil {
		return
	}
	if arg.Receiver != nil {
		p.receiver(arg.Receiver)
		return
	}
	if arg.Typed != nil {
		if pat := arg.Typed.Pat; pat != nil {
			if pat.Mut {
				p.str("mut ")
			}
			p.str(pat.Name)
			p.str(": ")
		}
		p.typ(arg.Typed.Type)
	}
}

func (p *printer) receiver(r *Receiver) {
	switch r.Form {
	case ReceiverValue:
		if r.Mut {
			p.str("mut ")
		}
		p.str("self")
	case ReceiverRef:
		p.str("&")
		if r.Lifetime != nil {
			p.str(r.Lifetime.String())
			p.str(" ")
		}
		if r.RefMut {
			p.str("mut ")
		}
		p.str("self")
	case ReceiverTyped:
		if r.Mut {
			p.str("mut ")
		}
		p.str("self: ")
		p.typ(r.Type)
	}
}

func (p *printer) generics(g *Generics) {
	if g == nil || len(g.Params) == 0 {
		return
	}
	p.str("<")
	for i, param := range g.Params {
		if i > 0 {
			p.str(", ")
		}
		p.genericParam(param)
	}
	p.str(">")
}

func (p *printer) genericParam(param *GenericParam) {
	switch param.Kind {
	case GenericLifetime:
		p.str("'")
		p.str(param.Name)
		if len(param.LifetimeBounds) > 0 {
			p.str(": ")
			p.lifetimes(param.LifetimeBounds)
		}
	case GenericType:
		p.str(param.Name)
		if len(param.Bounds) > 0 {
			p.str(": ")
			p.bounds(param.Bounds)
		}
		if param.Default != nil {
			p.str(" = ")
			p.typ(param.Default)
		}
	case GenericConst:
		p.str("const ")
		p.str(param.Name)
		p.str(": ")
		p.typ(param.ConstType)
		if param.Default != nil {
			p.str(" = ")
			p.typ(param.Default)
		}
	}
}

func (p *printer) where(g *Generics) {
	if g == nil || len(g.Where) == 0 {
		return
	}
	p.str(" where ")
	for i, pred := range g.Where {
		if i > 0 {
			p.str(", ")
		}
		if pred.Lifetime != nil {
			p.str(pred.Lifetime.String())
			p.str(": ")
			p.lifetimes(pred.LifetimeBounds)
			continue
		}
		p.typ(pred.Type)
		p.str(": ")
		p.bounds(pred.Bounds)
	}
}

func (p *printer) lifetimes(lts []*Lifetime) {
	for i, lt := range lts {
		if i > 0 {
			p.str(" + ")
		}
		p.str(lt.String())
	}
}

func (p *printer) bounds(bs []*Bound) {
	for i, b := range bs {
		if i > 0 {
			p.str(" + ")
		}
		p.bound(b)
	}
}

func (p *printer) bound(b *Bound) {
	if b.Kind == BoundLifetime {
		p.str(b.Lifetime.String())
		return
	}
	if b.Paren {
		p.str("(")
	}
	if b.Maybe {
		p.str("?")
	}
	p.forLifetimes(b.ForLifetimes)
	p.path(b.Trait)
	if b.Paren {
		p.str(")")
	}
}

func (p *printer) forLifetimes(params []*GenericParam) {
	if len(params) == 0 {
		return
	}
	p.str("for<")
	for i, param := range params {
		if i > 0 {
			p.str(", ")
		}
		p.genericParam(param)
	}
	p.str("> ")
}

func (p *printer) path(path *Path) {
	if path == nil {
		return
	}
	if path.Global {
		p.str("::")
	}
	for i, seg := range path.Segments {
		if i > 0 {
			p.str("::")
		}
		p.str(seg.Name)
		if seg.Angle != nil {
			if seg.Angle.Turbofish {
				p.str("::")
			}
			p.str("<")
			for j, arg := range seg.Angle.Args {
				if j > 0 {
					p.str(", ")
				}
				p.genericArg(arg)
			}
			p.str(">")
		}
		if seg.Paren != nil {
			p.str("(")
			p.typeList(seg.Paren.Inputs)
			p.str(")")
			if seg.Paren.Output != nil {
				p.str(" -> ")
				p.typ(seg.Paren.Output)
			}
		}
	}
}

func (p *printer) genericArg(arg *GenericArg) {
	switch arg.Kind {
	case ArgType:
		p.typ(arg.Type)
	case ArgLifetime:
		p.str(arg.Lifetime.String())
	case ArgBinding:
		p.str(arg.Name)
		p.str(" = ")
		p.typ(arg.Type)
	case ArgConst:
		p.expr(arg.Const)
	}
}

func (p *printer) typeList(ts []*Type) {
	for i, t := range ts {
		if i > 0 {
			p.str(", ")
		}
		p.typ(t)
	}
}

func (p *printer) typ(t *Type) {
	if t == nil {
		return
	}
	switch data := t.Data.(type) {
	case *PathData:
		p.path(data.Path)
	case *RefData:
		p.str("&")
		if data.Lifetime != nil {
			p.str(data.Lifetime.String())
			p.str(" ")
		}
		if data.Mut {
			p.str("mut ")
		}
		p.typ(data.Elem)
	case *PtrData:
		if data.Mut {
			p.str("*mut ")
		} else {
			p.str("*const ")
		}
		p.typ(data.Elem)
	case *SliceData:
		p.str("[")
		p.typ(data.Elem)
		p.str("]")
	case *ArrayData:
		p.str("[")
		p.typ(data.Elem)
		p.str("; ")
		p.expr(data.Len)
		p.str("]")
	case *TupleData:
		p.str("(")
		p.typeList(data.Elems)
		if len(data.Elems) == 1 {
			p.str(",")
		}
		p.str(")")
	case *ParenData:
		p.str("(")
		p.typ(data.Elem)
		p.str(")")
	case *BareFnData:
		p.forLifetimes(data.ForLifetimes)
		if data.Unsafe {
			p.str("unsafe ")
		}
		if data.Extern {
			p.str("extern ")
			if data.ABI != "" {
				p.str(data.ABI)
				p.str(" ")
			}
		}
		p.str("fn(")
		for i, param := range data.Params {
			if i > 0 {
				p.str(", ")
			}
			if param.Name != "" {
				p.str(param.Name)
				p.str(": ")
			}
			p.typ(param.Type)
		}
		if data.Variadic {
			if len(data.Params) > 0 {
				p.str(", ")
			}
			p.str("...")
		}
		p.str(")")
		if data.Output != nil {
			p.str(" -> ")
			p.typ(data.Output)
		}
	case *BoundsData:
		if t.Kind == TypeTraitObject {
			p.str("dyn ")
		} else {
			p.str("impl ")
		}
		p.bounds(data.Bounds)
	default:
		switch t.Kind {
		case TypeNever:
			p.str("!")
		case TypeInfer:
			p.str("_")
		}
	}
}

func (p *printer) expr(e *Expr) {
	if e == nil {
		return
	}
	if e.Kind != ExprBlock {
		p.str(e.Text)
		return
	}
	p.str("{ ")
	for _, it := range e.Items {
		p.item(it)
		p.str(" ")
	}
	if e.Text != "" {
		p.str(e.Text)
		p.str(" ")
	}
	p.str("}")
}
