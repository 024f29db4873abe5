package parser

import (
	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/source"
	"regionorm/internal/token"
)

func (p *Parser) parseFn(h itemHead) (*ast.Item, bool) {
	sig, ok := p.parseSignature()
	if !ok {
		return nil, false
	}
	data := &ast.FnData{Sig: sig}
	switch {
	case p.eat(token.Semicolon):
	case p.at(token.LBrace):
		body, ok := p.parseBody()
		if !ok {
			return nil, false
		}
		data.Body = body
	default:
		p.err(diag.SynExpectBody, "expected '{' or ';' after signature, got "+describe(p.peek()))
		return nil, false
	}
	it := &ast.Item{Kind: ast.ItemFn, Attrs: h.attrs, Pub: h.pub, PubScope: h.pubScope, Span: p.spanFrom(h.start), Data: data}
	return it, true
}

// parseBody пропускает тело функции по балансу скобок, не токенизируя его.
func (p *Parser) parseBody() (*ast.Body, bool) {
	open := p.advance() // {
	p.dropLookahead()
	end, closed := p.lx.SkipBalanced('{', '}')
	sp := source.Span{File: open.Span.File, Start: open.Span.Start, End: end}
	p.lastSpan = sp
	if !closed {
		p.report(diag.SynUnclosedBrace, diag.SevError, open.Span, "unclosed function body")
		return nil, false
	}
	return &ast.Body{Text: p.file.Text(sp), Span: sp}, true
}

func (p *Parser) parseSignature() (*ast.Signature, bool) {
	start := p.peek().Span
	sig := &ast.Signature{Generics: &ast.Generics{}}
	sig.Const = p.eat(token.KwConst)
	sig.Unsafe = p.eat(token.KwUnsafe)
	if p.eat(token.KwExtern) {
		sig.Extern = true
		if p.at(token.StringLit) {
			sig.ABI = p.advance().Text
		}
	}
	if _, ok := p.expect(token.KwFn, diag.SynUnexpectedToken, "expected 'fn'"); !ok {
		return nil, false
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name, got "+describe(p.peek()))
	if !ok {
		return nil, false
	}
	sig.Name = name.Text
	sig.NameSpan = name.Span
	if p.at(token.Lt) {
		sig.Generics = p.parseGenerics()
	}
	if !p.parseParams(sig) {
		return nil, false
	}
	if p.eat(token.Arrow) {
		out, ok := p.parseType()
		if !ok {
			return nil, false
		}
		sig.Output = out
	}
	p.parseWhere(sig.Generics)
	sig.Span = p.spanFrom(start)
	return sig, true
}

func (p *Parser) atEllipsis() bool {
	return p.at(token.Dot) && p.peekN(1).Kind == token.Dot && p.peekN(2).Kind == token.Dot
}

func (p *Parser) parseParams(sig *ast.Signature) bool {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	if !ok {
		return false
	}
	for !p.atOr(token.RParen, token.EOF) {
		if p.atEllipsis() {
			p.advance()
			p.advance()
			p.advance()
			sig.Variadic = true
			p.eat(token.Comma)
			break
		}
		p.parseAttributes()
		start := p.peek().Span
		if p.atReceiver() {
			r, ok := p.parseReceiver()
			if !ok {
				return false
			}
			if len(sig.Inputs) > 0 {
				p.report(diag.SynSelfNotFirst, diag.SevError, r.Span, "self must be the first parameter")
			}
			sig.Inputs = append(sig.Inputs, &ast.FnArg{Kind: ast.ArgReceiver, Receiver: r, Span: r.Span})
		} else {
			arg, ok := p.parseTypedArg()
			if !ok {
				return false
			}
			sig.Inputs = append(sig.Inputs, &ast.FnArg{Kind: ast.ArgTyped, Typed: arg, Span: p.spanFrom(start)})
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters, got "+describe(p.peek())); !ok {
		p.report(diag.SynUnclosedParen, diag.SevError, open.Span, "unclosed parameter list")
		return false
	}
	return true
}

// atReceiver распознаёт self, mut self, &self, &mut self, &'a self, &'a mut self.
func (p *Parser) atReceiver() bool {
	k := func(i int) token.Kind { return p.peekN(i).Kind }
	switch k(0) {
	case token.KwSelf:
		return true
	case token.KwMut:
		return k(1) == token.KwSelf
	case token.Amp:
		switch k(1) {
		case token.KwSelf:
			return true
		case token.KwMut:
			return k(2) == token.KwSelf
		case token.Lifetime:
			return k(2) == token.KwSelf || (k(2) == token.KwMut && k(3) == token.KwSelf)
		}
	}
	return false
}

// parseReceiver строит Receiver. Для сахарных форм тип синтезируется:
// Self или &Self с копией региона.
func (p *Parser) parseReceiver() (*ast.Receiver, bool) {
	start := p.peek().Span
	r := &ast.Receiver{}
	if p.eat(token.Amp) {
		r.Form = ast.ReceiverRef
		if p.at(token.Lifetime) {
			r.Lifetime = p.lifetime(p.advance())
		}
		r.RefMut = p.eat(token.KwMut)
		self := p.advance()
		r.Span = p.spanFrom(start)
		r.Type = ast.NewRef(r.Lifetime.Clone(), r.RefMut, ast.NewPathType("Self", self.Span))
		r.Type.Span = r.Span
		return r, true
	}
	r.Mut = p.eat(token.KwMut)
	self := p.advance()
	if p.eat(token.Colon) {
		r.Form = ast.ReceiverTyped
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		r.Type = ty
	} else {
		r.Form = ast.ReceiverValue
		r.Type = ast.NewPathType("Self", self.Span)
	}
	r.Span = p.spanFrom(start)
	return r, true
}

func (p *Parser) parseTypedArg() (*ast.TypedArg, bool) {
	start := p.peek().Span
	pat := &ast.Pat{}
	pat.Mut = p.eat(token.KwMut)
	if !p.atOr(token.Ident, token.Underscore) {
		p.err(diag.SynExpectIdentifier, "expected parameter name, got "+describe(p.peek()))
		return nil, false
	}
	pat.Name = p.advance().Text
	pat.Span = p.spanFrom(start)
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after parameter name"); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return &ast.TypedArg{Pat: pat, Type: ty}, true
}
