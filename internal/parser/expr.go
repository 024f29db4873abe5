package parser

import (
	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/token"
)

// parseConstExpr разбирает длину массива или const-аргумент:
// литерал, путь или блок { items...; expr }.
func (p *Parser) parseConstExpr() (*ast.Expr, bool) {
	start := p.peek().Span
	switch {
	case p.at(token.IntLit):
		tok := p.advance()
		return &ast.Expr{Kind: ast.ExprLit, Text: tok.Text, Span: tok.Span}, true
	case p.at(token.Minus) && p.peekN(1).Kind == token.IntLit:
		p.advance()
		tok := p.advance()
		return &ast.Expr{Kind: ast.ExprLit, Text: "-" + tok.Text, Span: p.spanFrom(start)}, true
	case p.atOr(token.Ident, token.ColonColon, token.KwSelf):
		path, ok := p.parsePath(false)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprPath, Text: p.file.Text(path.Span), Span: path.Span}, true
	case p.at(token.LBrace):
		return p.parseBlockExpr()
	default:
		p.err(diag.SynUnexpectedToken, "expected constant expression, got "+describe(p.peek()))
		return nil, false
	}
}

func (p *Parser) atNestedItem() bool {
	switch p.peek().Kind {
	case token.KwImpl, token.KwTrait, token.KwType, token.KwPub, token.KwStruct, token.Hash:
		return true
	case token.KwConst:
		// const X: T = ...;  или  const fn
		next := p.peekN(1).Kind
		return (next == token.Ident || next == token.Underscore) && p.peekN(2).Kind == token.Colon || p.atFnStart()
	default:
		return p.atFnStart()
	}
}

func (p *Parser) parseBlockExpr() (*ast.Expr, bool) {
	open := p.advance() // {
	e := &ast.Expr{Kind: ast.ExprBlock}
	for p.atNestedItem() {
		before := p.peek().Span
		it, ok := p.parseItem()
		if !ok {
			p.resyncMember(before)
			continue
		}
		e.Items = append(e.Items, it)
	}
	// хвостовое выражение сохраняется текстом
	first, last := p.peek().Span, p.lastSpan
	depth := 0
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if k == token.RBrace && depth == 0 {
			break
		}
		switch k {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			depth--
		}
		last = p.advance().Span
	}
	if last.End > first.Start {
		e.Text = p.file.Text(first.Cover(last))
	}
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block"); !ok {
		p.report(diag.SynUnclosedBrace, diag.SevError, open.Span, "unclosed block")
		return nil, false
	}
	e.Span = p.spanFrom(open.Span)
	return e, true
}
