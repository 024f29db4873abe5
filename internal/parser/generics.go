package parser

import (
	"strings"

	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/token"
)

func (p *Parser) lifetime(tok token.Token) *ast.Lifetime {
	return &ast.Lifetime{Name: strings.TrimPrefix(tok.Text, "'"), Span: tok.Span}
}

func (p *Parser) expectLifetime() (*ast.Lifetime, bool) {
	tok, ok := p.expect(token.Lifetime, diag.SynExpectLifetime, "expected lifetime, got "+describe(p.peek()))
	if !ok {
		return nil, false
	}
	return p.lifetime(tok), true
}

// parseGenerics разбирает <'a: 'b, T: Bound = Default, const N: usize>.
func (p *Parser) parseGenerics() *ast.Generics {
	g := &ast.Generics{}
	open := p.advance() // <
	for !p.atOr(token.Gt, token.EOF) {
		p.parseAttributes()
		param, ok := p.parseGenericParam()
		if !ok {
			break
		}
		g.Params = append(g.Params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close generics, got "+describe(p.peek())); !ok {
		p.report(diag.SynUnclosedAngle, diag.SevError, open.Span, "unclosed generics list")
	}
	g.Span = p.spanFrom(open.Span)
	return g
}

func (p *Parser) parseGenericParam() (*ast.GenericParam, bool) {
	start := p.peek().Span
	switch {
	case p.at(token.Lifetime):
		lt := p.lifetime(p.advance())
		param := ast.NewLifetimeParam(lt.Name)
		if p.eat(token.Colon) {
			param.LifetimeBounds = p.parseLifetimeBounds()
		}
		param.Span = p.spanFrom(start)
		return param, true
	case p.at(token.KwConst):
		p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected const parameter name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after const parameter"); !ok {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		param := &ast.GenericParam{Kind: ast.GenericConst, Name: name.Text, ConstType: ty}
		if p.eat(token.Assign) {
			if param.Default, ok = p.parseType(); !ok {
				return nil, false
			}
		}
		param.Span = p.spanFrom(start)
		return param, true
	case p.at(token.Ident):
		param := &ast.GenericParam{Kind: ast.GenericType, Name: p.advance().Text}
		if p.eat(token.Colon) {
			param.Bounds = p.parseBounds()
		}
		if p.eat(token.Assign) {
			var ok bool
			if param.Default, ok = p.parseType(); !ok {
				return nil, false
			}
		}
		param.Span = p.spanFrom(start)
		return param, true
	default:
		p.err(diag.SynUnexpectedToken, "expected generic parameter, got "+describe(p.peek()))
		return nil, false
	}
}

func (p *Parser) parseLifetimeBounds() []*ast.Lifetime {
	var out []*ast.Lifetime
	for p.at(token.Lifetime) {
		out = append(out, p.lifetime(p.advance()))
		if !p.eat(token.Plus) {
			break
		}
	}
	return out
}

// parseForLifetimes разбирает for<'a, 'b>.
func (p *Parser) parseForLifetimes() ([]*ast.GenericParam, bool) {
	p.advance() // for
	if _, ok := p.expect(token.Lt, diag.SynUnexpectedToken, "expected '<' after 'for'"); !ok {
		return nil, false
	}
	var params []*ast.GenericParam
	for p.at(token.Lifetime) {
		tok := p.advance()
		param := ast.NewLifetimeParam(p.lifetime(tok).Name)
		param.Span = tok.Span
		if p.eat(token.Colon) {
			param.LifetimeBounds = p.parseLifetimeBounds()
		}
		params = append(params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>' to close 'for<'"); !ok {
		return nil, false
	}
	return params, true
}

// parseBounds разбирает Bound ('+' Bound)*.
func (p *Parser) parseBounds() []*ast.Bound {
	var out []*ast.Bound
	for {
		if !p.atBoundStart() {
			break
		}
		b, ok := p.parseBound()
		if !ok {
			break
		}
		out = append(out, b)
		if !p.eat(token.Plus) {
			break
		}
	}
	return out
}

func (p *Parser) atBoundStart() bool {
	return p.atOr(token.Lifetime, token.LParen, token.Question, token.KwFor,
		token.Ident, token.ColonColon, token.KwSelf)
}

func (p *Parser) parseBound() (*ast.Bound, bool) {
	start := p.peek().Span
	if p.at(token.Lifetime) {
		lt := p.lifetime(p.advance())
		return &ast.Bound{Kind: ast.BoundLifetime, Lifetime: lt, Span: lt.Span}, true
	}
	b := &ast.Bound{Kind: ast.BoundTrait}
	if p.eat(token.LParen) {
		b.Paren = true
	}
	b.Maybe = p.eat(token.Question)
	if p.at(token.KwFor) {
		params, ok := p.parseForLifetimes()
		if !ok {
			return nil, false
		}
		b.ForLifetimes = params
	}
	path, ok := p.parsePath(true)
	if !ok {
		return nil, false
	}
	b.Trait = path
	if b.Paren {
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after bound"); !ok {
			return nil, false
		}
	}
	b.Span = p.spanFrom(start)
	return b, true
}

// parseWhere разбирает необязательный where-блок в g.
func (p *Parser) parseWhere(g *ast.Generics) {
	if !p.eat(token.KwWhere) {
		return
	}
	for !p.atOr(token.LBrace, token.Semicolon, token.Assign, token.EOF) {
		start := p.peek().Span
		pred := &ast.WherePredicate{}
		if p.at(token.Lifetime) {
			pred.Lifetime = p.lifetime(p.advance())
			if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in where clause"); !ok {
				return
			}
			pred.LifetimeBounds = p.parseLifetimeBounds()
		} else {
			ty, ok := p.parseType()
			if !ok {
				return
			}
			pred.Type = ty
			if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in where clause"); !ok {
				return
			}
			pred.Bounds = p.parseBounds()
		}
		pred.Span = p.spanFrom(start)
		g.Where = append(g.Where, pred)
		if !p.eat(token.Comma) {
			return
		}
	}
}
