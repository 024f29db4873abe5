package parser

import (
	"slices"
	"strings"

	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/source"
	"regionorm/internal/token"
)

// itemHead: то, что может стоять перед ключевым словом item.
type itemHead struct {
	start    source.Span
	attrs    []string
	pub      bool
	pubScope string
}

func (p *Parser) parseItemHead() itemHead {
	h := itemHead{start: p.peek().Span}
	h.attrs = p.parseAttributes()
	if p.eat(token.KwPub) {
		h.pub = true
		if p.at(token.LParen) {
			open := p.advance()
			var parts []string
			for !p.atOr(token.RParen, token.EOF) {
				parts = append(parts, p.advance().Text)
			}
			if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after visibility"); !ok {
				p.report(diag.SynUnclosedParen, diag.SevError, open.Span, "unclosed visibility scope")
			}
			h.pubScope = strings.Join(parts, " ")
		}
	}
	return h
}

// parseAttributes collects #[...] and #![...] verbatim.
func (p *Parser) parseAttributes() []string {
	var attrs []string
	for p.at(token.Hash) {
		hash := p.advance()
		p.eat(token.Bang)
		open, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[' after '#'")
		if !ok {
			return attrs
		}
		p.dropLookahead()
		end, closed := p.lx.SkipBalanced('[', ']')
		if !closed {
			p.report(diag.SynUnclosedBracket, diag.SevError, open.Span, "unclosed attribute")
		}
		sp := source.Span{File: hash.Span.File, Start: hash.Span.Start, End: end}
		p.lastSpan = sp
		attrs = append(attrs, p.file.Text(sp))
	}
	return attrs
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (*ast.Item, bool) {
	h := p.parseItemHead()
	switch k := p.peek().Kind; {
	case k == token.KwImpl:
		return p.parseImpl(h, false)
	case k == token.KwTrait:
		return p.parseTrait(h, false)
	case k == token.KwUnsafe && p.peekN(1).Kind == token.KwImpl:
		p.advance()
		return p.parseImpl(h, true)
	case k == token.KwUnsafe && p.peekN(1).Kind == token.KwTrait:
		p.advance()
		return p.parseTrait(h, true)
	case p.atFnStart():
		return p.parseFn(h)
	case k == token.KwConst:
		return p.parseConst(h)
	case k == token.KwType:
		return p.parseTypeAlias(h)
	case k == token.KwStruct:
		p.err(diag.SynUnexpectedTopLevel, "struct definitions are not supported in signature files")
		return nil, false
	default:
		p.err(diag.SynUnexpectedTopLevel, "expected item, got "+describe(p.peek()))
		return nil, false
	}
}

// parseMember разбирает элемент внутри impl или trait: fn, const, type.
func (p *Parser) parseMember() (*ast.Item, bool) {
	h := p.parseItemHead()
	switch {
	case p.atFnStart():
		return p.parseFn(h)
	case p.at(token.KwConst):
		return p.parseConst(h)
	case p.at(token.KwType):
		return p.parseTypeAlias(h)
	default:
		p.err(diag.SynBadImplItem, "expected fn, const or type member, got "+describe(p.peek()))
		return nil, false
	}
}

// atFnStart reports whether the next tokens begin a function: [const] [unsafe] [extern "abi"] fn.
func (p *Parser) atFnStart() bool {
	for i := 0; ; i++ {
		switch p.peekN(i).Kind {
		case token.KwFn:
			return true
		case token.KwConst, token.KwUnsafe, token.KwExtern, token.StringLit:
			if i > 4 {
				return false
			}
		default:
			return false
		}
	}
}

// memberList is the body of an impl or trait.
type memberList struct {
	head  []string // comments inside the header
	items []*ast.Item
	tail  []string // comments before '}'
}

func (p *Parser) parseMembers() (memberList, bool) {
	var ml memberList
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{', got "+describe(p.peek()))
	if !ok {
		return ml, false
	}
	ml.head = p.takeStray()
	var prev *ast.Item
	for {
		lead := p.boundary(prev)
		if p.atOr(token.RBrace, token.EOF) {
			ml.tail = trimBlank(lead)
			break
		}
		before := p.peek().Span
		it, ok := p.parseMember()
		if ok {
			it.Comments = slices.Concat(lead, it.Comments, p.takeStray())
			ml.items = append(ml.items, it)
			prev = it
			continue
		}
		p.takeStray()
		prev = nil
		p.resyncMember(before)
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'"); !ok {
		p.report(diag.SynUnclosedBrace, diag.SevError, open.Span, "unclosed '{'")
		return ml, false
	}
	return ml, true
}

func (p *Parser) parseImpl(h itemHead, unsafe bool) (*ast.Item, bool) {
	p.advance() // impl
	data := &ast.ImplData{Unsafe: unsafe, Generics: &ast.Generics{}}
	if p.at(token.Lt) {
		data.Generics = p.parseGenerics()
	}
	negative := p.eat(token.Bang)
	first, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if p.eat(token.KwFor) {
		pd, isPath := first.Data.(*ast.PathData)
		if !isPath {
			p.report(diag.SynExpectType, diag.SevError, first.Span, "expected a trait path before 'for'")
			return nil, false
		}
		data.Trait = pd.Path
		data.Negative = negative
		if data.SelfTy, ok = p.parseType(); !ok {
			return nil, false
		}
	} else {
		if negative {
			p.report(diag.SynUnexpectedToken, diag.SevError, first.Span, "negative impls need a trait")
		}
		data.SelfTy = first
	}
	p.parseWhere(data.Generics)
	ml, ok := p.parseMembers()
	data.Items, data.Tail = ml.items, ml.tail
	it := &ast.Item{Kind: ast.ItemImpl, Comments: ml.head, Attrs: h.attrs, Pub: h.pub, PubScope: h.pubScope, Span: p.spanFrom(h.start), Data: data}
	return it, ok
}

func (p *Parser) parseTrait(h itemHead, unsafe bool) (*ast.Item, bool) {
	p.advance() // trait
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected trait name")
	if !ok {
		return nil, false
	}
	data := &ast.TraitData{Unsafe: unsafe, Name: name.Text, Generics: &ast.Generics{}}
	if p.at(token.Lt) {
		data.Generics = p.parseGenerics()
	}
	if p.eat(token.Colon) {
		data.Supertraits = p.parseBounds()
	}
	p.parseWhere(data.Generics)
	ml, ok := p.parseMembers()
	data.Items, data.Tail = ml.items, ml.tail
	it := &ast.Item{Kind: ast.ItemTrait, Comments: ml.head, Attrs: h.attrs, Pub: h.pub, PubScope: h.pubScope, Span: p.spanFrom(h.start), Data: data}
	return it, ok
}

func (p *Parser) parseConst(h itemHead) (*ast.Item, bool) {
	p.advance() // const
	var name token.Token
	if p.atOr(token.Ident, token.Underscore) {
		name = p.advance()
	} else {
		p.err(diag.SynExpectIdentifier, "expected constant name, got "+describe(p.peek()))
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after constant name"); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	data := &ast.ConstData{Name: name.Text, Type: ty}
	if p.at(token.Assign) {
		eq := p.advance()
		p.dropLookahead()
		end, found := p.lx.ScanUntilSemicolon()
		data.Value = strings.TrimSpace(p.file.Text(source.Span{File: eq.Span.File, Start: eq.Span.End, End: end}))
		if !found {
			p.report(diag.SynExpectSemicolon, diag.SevError, eq.Span, "expected ';' after constant value")
			return nil, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after constant"); !ok {
		return nil, false
	}
	it := &ast.Item{Kind: ast.ItemConst, Attrs: h.attrs, Pub: h.pub, PubScope: h.pubScope, Span: p.spanFrom(h.start), Data: data}
	return it, true
}

func (p *Parser) parseTypeAlias(h itemHead) (*ast.Item, bool) {
	p.advance() // type
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if !ok {
		return nil, false
	}
	data := &ast.TypeAliasData{Name: name.Text, Generics: &ast.Generics{}}
	if p.at(token.Lt) {
		data.Generics = p.parseGenerics()
	}
	if p.eat(token.Colon) {
		data.Bounds = p.parseBounds()
	}
	p.parseWhere(data.Generics)
	if p.eat(token.Assign) {
		if data.Type, ok = p.parseType(); !ok {
			return nil, false
		}
		p.parseWhere(data.Generics)
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type"); !ok {
		return nil, false
	}
	it := &ast.Item{Kind: ast.ItemTypeAlias, Attrs: h.attrs, Pub: h.pub, PubScope: h.pubScope, Span: p.spanFrom(h.start), Data: data}
	return it, true
}
